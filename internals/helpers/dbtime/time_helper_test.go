package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuarterOf(t *testing.T) {
	cases := map[time.Month]int{
		time.January: 1, time.March: 1,
		time.April: 2, time.June: 2,
		time.July: 3, time.September: 3,
		time.October: 4, time.December: 4,
	}
	for m, want := range cases {
		got := QuarterOf(time.Date(2024, m, 15, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, want, got, m.String())
	}
}

func TestJakartaOffset(t *testing.T) {
	_, off := time.Date(2024, 1, 1, 0, 0, 0, 0, Jakarta()).Zone()
	assert.Equal(t, 7*60*60, off)
}
