package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// UserQuery selects a page of the user listing.
type UserQuery struct {
	Page   int
	Limit  int
	Search string // case-insensitive substring of name or email
}

// UserSummary holds system-wide user counts. It ignores Search.
type UserSummary struct {
	TotalUsers        int `json:"totalUsers"`
	NewUsersThisMonth int `json:"newUsersThisMonth"`
	ActiveUsers       int `json:"activeUsers"`
	InactiveUsers     int `json:"inactiveUsers"`
	ActiveRate        int `json:"activeRate"`
	AdminUsers        int `json:"adminUsers"`
}

// UserRow is one user of the listing with membership and task counts.
type UserRow struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Role          string            `json:"role"`
	Status        domain.UserStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	ProjectsCount int               `json:"projectsCount"`
	TasksCount    int               `json:"tasksCount"`
}

// UserPage is a page of the user listing. Total counts the users matching
// the search and drives TotalPages.
type UserPage struct {
	Summary    UserSummary `json:"summary"`
	Data       []UserRow   `json:"data"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"totalPages"`
}

// ListUsers pages through users newest first. Page and limit must be
// positive; anything else is rejected with domain.ErrInvalidInput rather
// than clamped.
func ListUsers(ds Dataset, q UserQuery, now time.Time) (UserPage, error) {
	if q.Page <= 0 {
		return UserPage{}, fmt.Errorf("%w: page must be a positive integer", domain.ErrInvalidInput)
	}
	if q.Limit <= 0 {
		return UserPage{}, fmt.Errorf("%w: limit must be a positive integer", domain.ErrInvalidInput)
	}

	page := UserPage{
		Summary: summarizeUsers(ds.Users, now),
		Data:    []UserRow{},
		Page:    q.Page,
		Limit:   q.Limit,
	}

	matched := make([]domain.User, 0, len(ds.Users))
	for _, u := range ds.Users {
		if MatchesSearch(u, q.Search) {
			matched = append(matched, u)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	page.Total = len(matched)
	page.TotalPages = (page.Total + q.Limit - 1) / q.Limit

	start := (q.Page - 1) * q.Limit
	if start >= len(matched) {
		return page, nil
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}

	projects, tasks := membershipCounts(ds)
	for _, u := range matched[start:end] {
		page.Data = append(page.Data, UserRow{
			ID:            u.ID,
			Name:          u.Name,
			Email:         u.Email,
			Role:          u.Role,
			Status:        u.Status,
			CreatedAt:     u.CreatedAt,
			ProjectsCount: len(projects[u.ID]),
			TasksCount:    len(tasks[u.ID]),
		})
	}
	return page, nil
}

// MatchesSearch reports whether search is a case-insensitive substring of
// the user's name or email. An empty search matches everyone.
func MatchesSearch(u domain.User, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Name), search) ||
		strings.Contains(strings.ToLower(u.Email), search)
}

func summarizeUsers(users []domain.User, now time.Time) UserSummary {
	monthAgo := now.AddDate(0, -1, 0)
	s := UserSummary{TotalUsers: len(users)}
	for _, u := range users {
		if u.Status == domain.UserActive {
			s.ActiveUsers++
		}
		if u.IsAdmin() {
			s.AdminUsers++
		}
		if !u.CreatedAt.Before(monthAgo) {
			s.NewUsersThisMonth++
		}
	}
	s.InactiveUsers = s.TotalUsers - s.ActiveUsers
	s.ActiveRate = CompletionRate(s.ActiveUsers, s.TotalUsers)
	return s
}

// membershipCounts returns, per user id, the distinct projects they belong
// to and the distinct tasks they created.
func membershipCounts(ds Dataset) (map[string]map[string]struct{}, map[string]map[string]struct{}) {
	projects := make(map[string]map[string]struct{})
	for _, p := range ds.Projects {
		for _, id := range p.MemberIDs {
			if projects[id] == nil {
				projects[id] = make(map[string]struct{})
			}
			projects[id][p.ID] = struct{}{}
		}
	}
	tasks := make(map[string]map[string]struct{})
	for _, t := range ds.Tasks {
		if tasks[t.CreatedByID] == nil {
			tasks[t.CreatedByID] = make(map[string]struct{})
		}
		tasks[t.CreatedByID][t.ID] = struct{}{}
	}
	return projects, tasks
}
