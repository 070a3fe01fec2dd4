package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForDisplay(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "emphasis and newline", raw: "**Strong fit**\nGood skills", want: "Strong fit<br>Good skills"},
		{name: "single asterisks kept", raw: "* bullet\n* another", want: "* bullet<br>* another"},
		{name: "odd markers", raw: "***bold italic***", want: "*bold italic*"},
		{name: "score line untouched", raw: "Match Score: 85%\nMissing Keywords: [Kafka]", want: "Match Score: 85%<br>Missing Keywords: [Kafka]"},
		{name: "crlf keeps carriage return", raw: "a\r\nb", want: "a\r<br>b"},
		{name: "empty", raw: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ForDisplay(tc.raw))
		})
	}
}
