package timetricks

import (
	"fmt"
	"testing"
	"time"
)

func ExampleDaysFrom() {
	landfall := time.Date(2015, time.December, 22, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		t := landfall.Add(time.Duration(i-2) * 12 * time.Hour)
		fmt.Println(DaysFrom(t, landfall))
	}
	// Output:
	// -1
	// -0.5
	// 0
	// 0.5
}

func TestTrimClock(t *testing.T) {
	in := time.Date(2015, time.December, 21, 13, 37, 42, 0, time.UTC)
	got := TrimClock(in)
	want := time.Date(2015, time.December, 21, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
	if !TrimClock(want).Equal(want) {
		t.Errorf("midnight should be a fixed point")
	}
}
