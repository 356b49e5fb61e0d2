package bulletin

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Supported date formats
const (
	DateFormatISO          = "YYYY-MM-DD"
	DateFormatDayMonthYear = "DD/MM/YYYY"
	DateFormatMonthDayYear = "MM/DD/YYYY"
	DateFormatDashed       = "DD-MM-YYYY"
	DateFormatWeekday      = "dddd, DD - MM"
	DateRangeFormatCompact = "DD-DD, MMMM YYYY"
)

// DefaultLocale is used when the caller does not pick one
const DefaultLocale = "es"

// Calendar names weekdays and months for a locale
type Calendar interface {
	WeekdayName(day time.Weekday, locale string) string
	MonthName(month time.Month, locale string) string
}

var weekdayNames = map[string][7]string{
	"es": {"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
	"en": {"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"},
	"pt": {"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"},
}

var monthNames = map[string][12]string{
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	"en": {"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"},
	"pt": {"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
}

// LocaleCalendar is the built-in Calendar for es, en and pt. Names come back
// lower case; the date formatter capitalises them for the locale.
type LocaleCalendar struct{}

func (LocaleCalendar) WeekdayName(day time.Weekday, locale string) string {
	if names, ok := weekdayNames[baseLanguage(locale)]; ok {
		return names[day]
	}
	return strings.ToLower(day.String())
}

func (LocaleCalendar) MonthName(month time.Month, locale string) string {
	if names, ok := monthNames[baseLanguage(locale)]; ok && month >= time.January && month <= time.December {
		return names[month-1]
	}
	return strings.ToLower(month.String())
}

func baseLanguage(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	return locale
}

// capitalize upper-cases the first letter of a name using the locale's rules
func capitalize(name, locale string) string {
	if name == "" {
		return name
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Make(DefaultLocale)
	}
	first, size := []rune(name)[0], len(string([]rune(name)[0]))
	return cases.Title(tag).String(string(first)) + name[size:]
}

// ParseLocalDate parses a field date value. Plain YYYY-MM-DD values are read
// as calendar dates in the local time zone so the day never shifts. Full
// timestamps are converted to local time.
func ParseLocalDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, true
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			if layout == time.RFC3339Nano {
				return t.Local(), true
			}
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local), true
		}
	}
	return time.Time{}, false
}

// DateFormatter renders field dates
type DateFormatter struct {
	Locale   string
	Calendar Calendar
}

// Format renders a date value. A missing or unparseable value renders as the
// format pattern itself.
func (d DateFormatter) Format(value, format string) string {
	if format == "" {
		format = DateFormatISO
	}
	t, ok := ParseLocalDate(value)
	if !ok {
		return format
	}
	switch format {
	case DateFormatDayMonthYear:
		return fmt.Sprintf("%02d/%02d/%04d", t.Day(), t.Month(), t.Year())
	case DateFormatMonthDayYear:
		return fmt.Sprintf("%02d/%02d/%04d", t.Month(), t.Day(), t.Year())
	case DateFormatDashed:
		return fmt.Sprintf("%02d-%02d-%04d", t.Day(), t.Month(), t.Year())
	case DateFormatWeekday:
		weekday := capitalize(d.calendar().WeekdayName(t.Weekday(), d.locale()), d.locale())
		return fmt.Sprintf("%s, %02d - %02d", weekday, t.Day(), t.Month())
	default:
		return fmt.Sprintf("%04d-%02d-%02d", t.Year(), t.Month(), t.Day())
	}
}

// FormatRange renders a date range. The compact format shares the end date's
// month and year; every other format renders both dates independently.
func (d DateFormatter) FormatRange(start, end, format string) string {
	if format == DateRangeFormatCompact {
		s, okStart := ParseLocalDate(start)
		e, okEnd := ParseLocalDate(end)
		if !okStart || !okEnd {
			return format
		}
		month := capitalize(d.calendar().MonthName(e.Month(), d.locale()), d.locale())
		return fmt.Sprintf("%02d-%02d, %s %04d", s.Day(), e.Day(), month, e.Year())
	}
	return d.Format(start, format) + " - " + d.Format(end, format)
}

func (d DateFormatter) locale() string {
	if d.Locale == "" {
		return DefaultLocale
	}
	return d.Locale
}

func (d DateFormatter) calendar() Calendar {
	if d.Calendar == nil {
		return LocaleCalendar{}
	}
	return d.Calendar
}
