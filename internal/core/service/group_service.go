package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
	"github.com/splitr-dev/splitr-api/internal/core/ledger"
	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

// GroupService implements group creation and the group ledger views.
type GroupService struct {
	groups      ports.GroupRepository
	expenses    ports.ExpenseRepository
	settlements ports.SettlementRepository
	users       ports.UserRepository
	logger      zerolog.Logger
}

func NewGroupService(groups ports.GroupRepository, expenses ports.ExpenseRepository, settlements ports.SettlementRepository, users ports.UserRepository, logger zerolog.Logger) *GroupService {
	return &GroupService{
		groups:      groups,
		expenses:    expenses,
		settlements: settlements,
		users:       users,
		logger:      logger,
	}
}

func (s *GroupService) Create(ctx context.Context, callerID string, input ports.CreateGroupInput) (string, error) {
	if callerID == "" {
		return "", domain.ErrNotAuthenticated
	}
	if input.Name == "" {
		return "", domain.NewValidationError("group name is required")
	}

	memberIDs := dedupe(input.MemberIDs, callerID)
	if len(memberIDs) > 0 {
		found, err := s.users.FindByIDs(ctx, memberIDs)
		if err != nil {
			return "", err
		}
		if len(found) != len(memberIDs) {
			return "", domain.NewValidationError("one or more members do not exist")
		}
	}

	now := time.Now().UTC()
	members := make([]domain.Member, 0, len(memberIDs)+1)
	members = append(members, domain.Member{UserID: callerID, Role: domain.MemberRoleAdmin, JoinedAt: now})
	for _, id := range memberIDs {
		members = append(members, domain.Member{UserID: id, Role: domain.MemberRoleMember, JoinedAt: now})
	}

	group := &domain.Group{
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   callerID,
		Members:     members,
		CreatedAt:   now,
	}

	id, err := s.groups.Insert(ctx, group)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to insert group")
		return "", err
	}

	s.logger.Info().Str("group_id", id).Str("created_by", callerID).Int("members", len(members)).Msg("group created")
	return id, nil
}

func (s *GroupService) GetGroupExpenses(ctx context.Context, callerID, groupID string) (*ports.GroupExpensesResult, error) {
	if callerID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(callerID) {
		return nil, domain.ErrForbidden
	}

	expenses, err := s.expenses.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.settlements.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	memberIDs := group.MemberIDs()
	users, err := s.users.FindByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	profiles := make(map[string]*domain.User, len(users))
	for _, u := range users {
		profiles[u.ID] = u
	}

	l := ledger.New(memberIDs)
	for _, e := range expenses {
		l.ApplyExpense(e)
	}
	for _, st := range settlements {
		l.ApplySettlement(st)
	}
	l.Net()

	members := make([]ports.MemberDetail, 0, len(group.Members))
	lookup := make(map[string]ports.MemberDetail, len(group.Members))
	for _, m := range group.Members {
		detail := ports.MemberDetail{ID: m.UserID, Role: m.Role}
		if u, ok := profiles[m.UserID]; ok {
			detail.Name = u.Name
			detail.ImageURL = u.ImageURL
		}
		members = append(members, detail)
		lookup[m.UserID] = detail
	}

	balances := make([]ports.MemberBalanceDetail, 0, len(memberIDs))
	for _, mb := range l.Balances() {
		balances = append(balances, ports.MemberBalanceDetail{
			MemberDetail: lookup[mb.UserID],
			TotalBalance: mb.TotalBalance,
			Owes:         mb.Owes,
			OwedBy:       mb.OwedBy,
		})
	}

	sort.Slice(expenses, func(i, j int) bool { return expenses[i].Date.After(expenses[j].Date) })
	sort.Slice(settlements, func(i, j int) bool { return settlements[i].Date.After(settlements[j].Date) })

	return &ports.GroupExpensesResult{
		Group: ports.GroupInfo{
			ID:          group.ID,
			Name:        group.Name,
			Description: group.Description,
		},
		Members:     members,
		Expenses:    expenses,
		Settlements: settlements,
		Balances:    balances,
		UserLookup:  lookup,
	}, nil
}

func (s *GroupService) ListForUser(ctx context.Context, callerID string) ([]ports.GroupSummary, error) {
	if callerID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	groups, err := s.groups.ListByMember(ctx, callerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.GroupSummary, 0, len(groups))
	for _, g := range groups {
		expenses, err := s.expenses.ListByGroup(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		settlements, err := s.settlements.ListByGroup(ctx, g.ID)
		if err != nil {
			return nil, err
		}

		l := ledger.New(g.MemberIDs())
		for _, e := range expenses {
			l.ApplyExpense(e)
		}
		for _, st := range settlements {
			l.ApplySettlement(st)
		}

		summaries = append(summaries, ports.GroupSummary{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			MemberCount: len(g.Members),
			Balance:     l.Total(callerID),
		})
	}
	return summaries, nil
}

// dedupe returns ids with duplicates and the caller removed, preserving
// submission order.
func dedupe(ids []string, callerID string) []string {
	seen := map[string]bool{callerID: true}
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
