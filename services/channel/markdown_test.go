package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdown(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"**Monday** at *2pm*", "Monday at 2pm"},
		{"# Our services\nHaircut", "Our services\nHaircut"},
		{"book [here](https://example.com)", "book here"},
		{"use `create_appointment`", "use create_appointment"},
		{"__bold__ and _soft_", "bold and soft"},
		{"plain text stays", "plain text stays"},
		{"  padded  ", "padded"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StripMarkdown(tc.in), "input %q", tc.in)
	}
}
