package shell

import (
	"testing"

	"github.com/matryer/is"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"worddb /path/to/words.db -table all_words",
			&shellcmd{"worddb", []string{"/path/to/words.db"},
				map[string]string{"table": "all_words"}},
			nil},
		{"solve",
			&shellcmd{"solve", nil, map[string]string{}},
			nil},
		{"set node-limit 500",
			&shellcmd{"set", []string{"node-limit", "500"}, map[string]string{}},
			nil},
		{"worddb words.db -table",
			nil, errWrongOptionSyntax},
	}
	for _, tc := range cases {
		cmd, err := extractFields(tc.line)
		is.Equal(cmd, tc.expCmd)
		is.Equal(err, tc.expErr)
	}
}
