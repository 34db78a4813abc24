package importer

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	validPriorities = map[string]bool{"A": true, "B": true, "C": true}
	validStatuses   = map[string]bool{"interested": true, "contacted": true, "visited": true, "offered": true, "committed": true, "declined": true}
	validDivisions  = map[string]bool{"D1": true, "D2": true, "D3": true, "NAIA": true, "JUCO": true}
	validHealth     = map[string]bool{"ok": true, "broken": true, "unknown": true}
)

// ValidateImportSchema checks the schema before conversion and returns every
// problem found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateAthlete(&schema.Athlete)...)

	schoolRefs := make(map[string]bool)
	errs = append(errs, validateSchools(schema.Schools, schoolRefs)...)

	eventRefs := make(map[string]bool)
	errs = append(errs, validateEvents(schema.Events, schoolRefs, eventRefs)...)

	errs = append(errs, validateInteractions(schema.Interactions, schoolRefs, eventRefs)...)
	errs = append(errs, validateVideos(schema.Videos)...)
	errs = append(errs, validateTasks(schema.CompletedTasks)...)

	return errs
}

func validateAthlete(a *AthleteImport) []error {
	var errs []error
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, fmt.Errorf("athlete.name is required"))
	}
	if a.GraduationYear < 2000 || a.GraduationYear > 2100 {
		errs = append(errs, fmt.Errorf("athlete.graduation_year: %d is out of range", a.GraduationYear))
	}
	return errs
}

func validateSchools(schools []SchoolImport, refs map[string]bool) []error {
	var errs []error
	for i, s := range schools {
		prefix := fmt.Sprintf("schools[%d]", i)

		errs = append(errs, registerRef(prefix, s.Ref, refs)...)
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		errs = append(errs, validateEnum(prefix+".priority", strings.ToUpper(s.Priority), validPriorities)...)
		errs = append(errs, validateEnum(prefix+".status", s.Status, validStatuses)...)
		errs = append(errs, validateEnum(prefix+".division", strings.ToUpper(s.Division), validDivisions)...)
		if s.FitScore != nil && (*s.FitScore < 0 || *s.FitScore > 100) {
			errs = append(errs, fmt.Errorf("%s.fit_score must be between 0 and 100", prefix))
		}
	}
	return errs
}

func validateEvents(events []EventImport, schoolRefs, refs map[string]bool) []error {
	var errs []error
	for i, e := range events {
		prefix := fmt.Sprintf("events[%d]", i)

		errs = append(errs, registerRef(prefix, e.Ref, refs)...)
		if strings.TrimSpace(e.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		errs = append(errs, validateRequiredDate(prefix+".date", e.Date)...)
		errs = append(errs, validateOptionalRef(prefix+".school_ref", e.SchoolRef, schoolRefs)...)
	}
	return errs
}

func validateInteractions(interactions []InteractionImport, schoolRefs, eventRefs map[string]bool) []error {
	var errs []error
	for i, in := range interactions {
		prefix := fmt.Sprintf("interactions[%d]", i)

		if strings.TrimSpace(in.Type) == "" {
			errs = append(errs, fmt.Errorf("%s.type is required", prefix))
		}
		errs = append(errs, validateRequiredDate(prefix+".date", in.Date)...)
		errs = append(errs, validateOptionalRef(prefix+".school_ref", in.SchoolRef, schoolRefs)...)
		errs = append(errs, validateOptionalRef(prefix+".event_ref", in.EventRef, eventRefs)...)
	}
	return errs
}

func validateVideos(videos []VideoImport) []error {
	var errs []error
	for i, v := range videos {
		prefix := fmt.Sprintf("videos[%d]", i)
		if strings.TrimSpace(v.URL) == "" {
			errs = append(errs, fmt.Errorf("%s.url is required", prefix))
		}
		errs = append(errs, validateEnum(prefix+".health", v.Health, validHealth)...)
	}
	return errs
}

func validateTasks(ids []string) []error {
	var errs []error
	seen := make(map[string]bool, len(ids))
	for i, id := range ids {
		switch {
		case strings.TrimSpace(id) == "":
			errs = append(errs, fmt.Errorf("completed_tasks[%d] is empty", i))
		case seen[id]:
			errs = append(errs, fmt.Errorf("completed_tasks[%d]: duplicate task %q", i, id))
		}
		seen[id] = true
	}
	return errs
}

func registerRef(prefix, ref string, refs map[string]bool) []error {
	switch {
	case ref == "":
		return []error{fmt.Errorf("%s.ref is required", prefix)}
	case refs[ref]:
		return []error{fmt.Errorf("%s.ref: duplicate ref %q", prefix, ref)}
	}
	refs[ref] = true
	return nil
}

func validateOptionalRef(field string, ref *string, refs map[string]bool) []error {
	if ref == nil || *ref == "" || refs[*ref] {
		return nil
	}
	return []error{fmt.Errorf("%s: ref %q not found", field, *ref)}
}

// validateEnum accepts an empty value; defaults are applied during conversion.
func validateEnum(field, value string, allowed map[string]bool) []error {
	if value == "" || allowed[value] {
		return nil
	}
	return []error{fmt.Errorf("%s: invalid value %q", field, value)}
}

func validateRequiredDate(field, value string) []error {
	if value == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)}
	}
	return nil
}
