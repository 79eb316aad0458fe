package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "formatted number without prefix",
			raw:  "(11) 99999-0000",
			want: "5511999990000",
		},
		{
			name: "number already carrying the prefix",
			raw:  "5511999990000",
			want: "5511999990000",
		},
		{
			name: "digits with spaces and dashes",
			raw:  "11 98888-7777",
			want: "5511988887777",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "no digits at all",
			raw:  "abc-()",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}
