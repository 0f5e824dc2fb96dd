package handler

import (
	"encoding/json"
	"time"

	"github.com/kodomo-labs/kodomo/internal/domain"
	"github.com/kodomo-labs/kodomo/internal/service"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

// ChildDTO is the JSON representation of a child profile.
type ChildDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

func toChildDTO(c *domain.Child) ChildDTO {
	return ChildDTO{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func toChildDTOs(children []domain.Child) []ChildDTO {
	dtos := make([]ChildDTO, len(children))
	for i := range children {
		dtos[i] = toChildDTO(&children[i])
	}
	return dtos
}

// TVLoginDTO is the JSON representation of a pairing session as seen by
// the TV. The one-time code is never included; it travels only in the
// establish response.
type TVLoginDTO struct {
	Token     string `json:"token"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func toTVLoginDTO(s *domain.TVLoginSession) TVLoginDTO {
	return TVLoginDTO{
		Token:     s.Token,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}

// ActivityLogDTO is the JSON representation of one logged session.
type ActivityLogDTO struct {
	ID              int64           `json:"id"`
	AppID           string          `json:"appId"`
	DurationSeconds int             `json:"durationSeconds"`
	SessionData     json.RawMessage `json:"sessionData"`
	CreatedAt       string          `json:"createdAt"`
}

func toActivityLogDTOs(logs []domain.ActivityLog) []ActivityLogDTO {
	dtos := make([]ActivityLogDTO, len(logs))
	for i, l := range logs {
		dtos[i] = ActivityLogDTO{
			ID:              l.ID,
			AppID:           l.AppID,
			DurationSeconds: l.DurationSeconds,
			SessionData:     l.SessionData,
			CreatedAt:       l.CreatedAt.Format(time.RFC3339),
		}
	}
	return dtos
}

// BadgeDTO is the JSON representation of a badge definition.
type BadgeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

func toBadgeDTO(d domain.BadgeDefinition) BadgeDTO {
	return BadgeDTO{ID: d.ID, Name: d.Name, Icon: d.Icon, Description: d.Description}
}

func toBadgeDTOs(defs []domain.BadgeDefinition) []BadgeDTO {
	dtos := make([]BadgeDTO, len(defs))
	for i, d := range defs {
		dtos[i] = toBadgeDTO(d)
	}
	return dtos
}

// EarnedBadgeDTO is the JSON representation of one earned badge.
type EarnedBadgeDTO struct {
	BadgeID  string `json:"badgeId"`
	EarnedAt string `json:"earnedAt"`
}

func toEarnedBadgeDTOs(earned []domain.EarnedBadge) []EarnedBadgeDTO {
	dtos := make([]EarnedBadgeDTO, len(earned))
	for i, e := range earned {
		dtos[i] = EarnedBadgeDTO{BadgeID: e.BadgeID, EarnedAt: e.EarnedAt.Format(time.RFC3339)}
	}
	return dtos
}

// ScheduleDTO is the JSON representation of a weekly schedule entry.
type ScheduleDTO struct {
	ID             int64  `json:"id"`
	AppID          string `json:"appId"`
	DayOfWeek      int    `json:"dayOfWeek"`
	TargetSessions int    `json:"targetSessions"`
	IsActive       bool   `json:"isActive"`
}

func toScheduleDTO(s *domain.Schedule) ScheduleDTO {
	return ScheduleDTO{
		ID:             s.ID,
		AppID:          s.AppID,
		DayOfWeek:      s.DayOfWeek,
		TargetSessions: s.TargetSessions,
		IsActive:       s.IsActive,
	}
}

func toScheduleDTOs(schedules []domain.Schedule) []ScheduleDTO {
	dtos := make([]ScheduleDTO, len(schedules))
	for i := range schedules {
		dtos[i] = toScheduleDTO(&schedules[i])
	}
	return dtos
}

// TodayScheduleDTO is one active schedule entry with today's progress.
type TodayScheduleDTO struct {
	ScheduleDTO
	Completed int `json:"completed"`
}

func toTodayScheduleDTOs(items []service.TodayProgress) []TodayScheduleDTO {
	dtos := make([]TodayScheduleDTO, len(items))
	for i, item := range items {
		dtos[i] = TodayScheduleDTO{ScheduleDTO: toScheduleDTO(&item.Schedule), Completed: item.Completed}
	}
	return dtos
}
