package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "zero padded month day hour minute",
			in:   time.Date(2024, 3, 5, 8, 7, 0, 0, time.Local),
			want: "2024-03-05 08:07",
		},
		{
			name: "seconds are dropped",
			in:   time.Date(2024, 3, 5, 8, 7, 59, 0, time.Local),
			want: "2024-03-05 08:07",
		},
		{
			name: "24 hour clock",
			in:   time.Date(2023, 12, 31, 23, 45, 0, 0, time.Local),
			want: "2023-12-31 23:45",
		},
		{
			name: "midnight",
			in:   time.Date(2024, 1, 1, 0, 5, 0, 0, time.Local),
			want: "2024-01-01 00:05",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FormatTimestamp(tc.in))
		})
	}
}
