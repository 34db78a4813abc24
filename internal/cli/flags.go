package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/scoutline/internal/domain"
)

const dateLayout = "2006-01-02"

// parseDate accepts YYYY-MM-DD or RFC 3339 and returns UTC.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t.UTC(), nil
}

func oneOf[T ~string](flag, value string, allowed ...T) (T, error) {
	for _, a := range allowed {
		if strings.EqualFold(string(a), value) {
			return a, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", fmt.Errorf("invalid --%s %q (want one of %s)", flag, value, strings.Join(names, ", "))
}

func parsePriority(v string) (domain.Priority, error) {
	return oneOf("priority", v, domain.PriorityA, domain.PriorityB, domain.PriorityC)
}

func parseSchoolStatus(v string) (domain.SchoolStatus, error) {
	return oneOf("status", v,
		domain.SchoolInterested, domain.SchoolContacted, domain.SchoolVisited,
		domain.SchoolOffered, domain.SchoolCommitted, domain.SchoolDeclined)
}

func parseDivision(v string) (domain.Division, error) {
	return oneOf("division", v,
		domain.DivisionD1, domain.DivisionD2, domain.DivisionD3, domain.DivisionNAIA, domain.DivisionJUCO)
}

func parseVideoHealth(v string) (domain.VideoHealth, error) {
	return oneOf("health", v, domain.VideoHealthOK, domain.VideoHealthBroken, domain.VideoHealthUnknown)
}

// optionalString returns nil unless the flag was set to a non-empty value.
func optionalString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

// optionalFloat returns nil unless the flag was set explicitly.
func optionalFloat(flags *pflag.FlagSet, name string) *float64 {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetFloat64(name)
	return &v
}
