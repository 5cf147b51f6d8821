// Package timex provides a time.Time wrapper with a stable serialized form
// shared by the database layer and the API layer.
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const layout = "2006-01-02 15:04:05"

// Time serializes as "2006-01-02 15:04:05" in JSON and in the database.
type Time time.Time

// Now returns the current time as a timex.Time.
func Now() Time {
	return Time(time.Now())
}

// Time converts back to the standard library type.
func (t Time) Time() time.Time {
	return time.Time(t)
}

// UnixMilli reports the time as milliseconds since the Unix epoch.
func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

// IsZero reports whether t is the zero time.
func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) String() string {
	return time.Time(t).Format(layout)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if time.Time(t).IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + time.Time(t).Format(layout) + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `""` || s == "null" {
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(`"`+layout+`"`, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// Value implements driver.Valuer so gorm can persist the wrapper directly.
func (t Time) Value() (driver.Value, error) {
	if time.Time(t).IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan implements sql.Scanner.
func (t *Time) Scan(v any) error {
	switch value := v.(type) {
	case nil:
		*t = Time(time.Time{})
	case time.Time:
		*t = Time(value)
	case []byte:
		parsed, err := time.ParseInLocation(layout, string(value), time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
	case string:
		parsed, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			return err
		}
		*t = Time(parsed)
	default:
		return fmt.Errorf("timex: cannot scan %T into Time", v)
	}
	return nil
}
