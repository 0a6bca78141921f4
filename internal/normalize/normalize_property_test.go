package normalize

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: for any non-negative hour/minute/second triple, rendering it as
// PT<h>H<m>M<s>S and parsing it back yields h*3600 + m*60 + s.
func TestProperty_DurationRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("full triple round-trips", prop.ForAll(
		func(h, m, s int) bool {
			iso := fmt.Sprintf("PT%dH%dM%dS", h, m, s)
			got, err := DurationSeconds(&iso)
			if err != nil || got == nil {
				return false
			}
			return *got == int64(h)*3600+int64(m)*60+int64(s)
		},
		gen.IntRange(0, 100),
		gen.IntRange(0, 59),
		gen.IntRange(0, 59),
	))

	properties.Property("minutes-only round-trips", prop.ForAll(
		func(m int) bool {
			iso := fmt.Sprintf("PT%dM", m)
			got, err := DurationSeconds(&iso)
			if err != nil || got == nil {
				return false
			}
			return *got == int64(m)*60
		},
		gen.IntRange(0, 100000),
	))

	properties.Property("result is never negative", prop.ForAll(
		func(h, m, s int) bool {
			iso := fmt.Sprintf("PT%dH%dM%dS", h, m, s)
			got, err := DurationSeconds(&iso)
			if err != nil || got == nil {
				return false
			}
			return *got >= 0
		},
		gen.IntRange(0, 100),
		gen.IntRange(0, 200),
		gen.IntRange(0, 200),
	))

	properties.TestingRun(t)
}

// Property: for any UTC instant, formatting it in the API shape and
// normalizing yields the same instant in the storage shape.
func TestProperty_TimestampRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("UTC instants normalize losslessly", prop.ForAll(
		func(unix int64) bool {
			instant := time.Unix(unix, 0).UTC()
			got, err := Timestamp(instant.Format("2006-01-02T15:04:05Z"))
			if err != nil {
				return false
			}
			return got == instant.Format("2006-01-02 15:04:05")
		},
		gen.Int64Range(0, 4102444800), // 1970 through 2100
	))

	properties.Property("offset timestamps always fail", prop.ForAll(
		func(unix int64, offsetHours int) bool {
			loc := time.FixedZone("test", offsetHours*3600)
			instant := time.Unix(unix, 0).In(loc)
			_, err := Timestamp(instant.Format("2006-01-02T15:04:05-07:00"))
			return err != nil
		},
		gen.Int64Range(0, 4102444800),
		gen.IntRange(1, 12),
	))

	properties.TestingRun(t)
}
