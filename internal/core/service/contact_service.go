package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

const searchLimit = 10

// ContactService resolves the people a caller has split with and the groups
// they belong to, both derived from history rather than an explicit friend
// list.
type ContactService struct {
	expenses ports.ExpenseRepository
	groups   ports.GroupRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewContactService(expenses ports.ExpenseRepository, groups ports.GroupRepository, users ports.UserRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{expenses: expenses, groups: groups, users: users, logger: logger}
}

func (s *ContactService) Search(ctx context.Context, callerID, query string) ([]ports.UserSummary, error) {
	if callerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []ports.UserSummary{}, nil
	}

	users, err := s.users.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}

	results := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		if u.ID == callerID {
			continue
		}
		results = append(results, ports.UserSummary{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			ImageURL: u.ImageURL,
		})
	}
	return results, nil
}

func (s *ContactService) ListContacts(ctx context.Context, callerID string) (*ports.ContactList, error) {
	if callerID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	expenses, err := s.expenses.ListPersonalInvolving(ctx, callerID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, e := range expenses {
		if e.PaidByUserID != callerID {
			seen[e.PaidByUserID] = true
		}
		for _, sp := range e.Splits {
			if sp.UserID != callerID {
				seen[sp.UserID] = true
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}

	var contacts []ports.UserSummary
	if len(ids) > 0 {
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		contacts = make([]ports.UserSummary, 0, len(users))
		for _, u := range users {
			contacts = append(contacts, ports.UserSummary{
				ID:       u.ID,
				Name:     u.Name,
				Email:    u.Email,
				ImageURL: u.ImageURL,
			})
		}
		sort.Slice(contacts, func(i, j int) bool { return contacts[i].Name < contacts[j].Name })
	}

	groups, err := s.groups.ListByMember(ctx, callerID)
	if err != nil {
		return nil, err
	}
	groupList := make([]ports.ContactGroup, 0, len(groups))
	for _, g := range groups {
		groupList = append(groupList, ports.ContactGroup{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			MemberCount: len(g.Members),
		})
	}

	return &ports.ContactList{Users: contacts, Groups: groupList}, nil
}
