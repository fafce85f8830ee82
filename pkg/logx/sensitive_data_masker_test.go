package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"deals_bot/pkg/logx"
)

func TestSensitiveDataMasker(t *testing.T) {
	rq := require.New(t)
	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bot token in url",
			input: "POST /bot123456:AAE-abc_DEF/sendMessage HTTP/1.1",
			want:  "POST /bot[MASKED]/sendMessage HTTP/1.1",
		},
		{
			name:  "password field",
			input: `{"password":"qwerty"}`,
			want:  `{"password":"[MASKED]"}`,
		},
		{
			name:  "token field",
			input: `{"token":"secret"}`,
			want:  `{"token":"[MASKED]"}`,
		},
		{
			name:  "plain body untouched",
			input: `{"title":"Hollow Knight","salePrice":"4.99"}`,
			want:  `{"title":"Hollow Knight","salePrice":"4.99"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.want, string(masker.Mask([]byte(tc.input))))
		})
	}
}
