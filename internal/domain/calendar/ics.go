package calendar

import (
	"context"
	"strings"

	ical "github.com/arran4/golang-ical"
)

const icsProductID = "-//PackMates//Calendar//EN"

// ExportICS arma un VCALENDAR con todas las entradas vivas del usuario
// (suscribible desde Google Calendar / Apple Calendar).
func (s *Service) ExportICS(ctx context.Context, userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", &ValidationError{Messages: []string{"userId is required"}}
	}

	all := make([]Entry, 0)
	q := Query{Filter: Filter{UserID: userID}, Limit: MaxLimit}
	for {
		items, total, err := s.List(ctx, q)
		if err != nil {
			return "", err
		}
		all = append(all, items...)
		q.Skip += len(items)
		if len(items) == 0 || q.Skip >= total {
			break
		}
	}

	return buildICS(userID, all), nil
}

func buildICS(userID string, entries []Entry) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName("PackMates " + userID)

	for _, e := range entries {
		ev := cal.AddEvent(e.ID + "@packmates")
		ev.SetDtStampTime(e.UpdatedAt)
		ev.SetCreatedTime(e.CreatedAt)
		ev.SetModifiedAt(e.UpdatedAt)
		ev.SetStartAt(e.StartDate)
		ev.SetEndAt(e.EndDate)
		ev.SetSummary(icsSummary(e))
		if e.Reason != "" {
			ev.SetDescription(e.Reason)
		}
		ev.SetStatus(icsStatus(e.Status))
	}

	return cal.Serialize()
}

func icsSummary(e Entry) string {
	if e.Type == EntryTypeRequest {
		return "Sitting request"
	}
	return "Availability"
}

func icsStatus(s Status) ical.ObjectStatus {
	switch s {
	case StatusBooked:
		return ical.ObjectStatusConfirmed
	case StatusCancelled:
		return ical.ObjectStatusCancelled
	default:
		return ical.ObjectStatusTentative
	}
}
