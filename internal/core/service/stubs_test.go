package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID   map[string]*domain.User
	nextID int
	err    error // if set, every call returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) seed(id, name, email string) *domain.User {
	u := &domain.User{ID: id, Name: name, Email: email, Role: domain.RoleUser}
	r.byID[id] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byID[clone.ID] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Search(_ context.Context, query string, limit int) ([]*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	q := strings.ToLower(query)
	var out []*domain.User
	for _, u := range r.byID {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			clone := *u
			out = append(out, &clone)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateName(_ context.Context, id, name string) error {
	if r.err != nil {
		return r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Name = name
	return nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

type stubExpenseRepo struct {
	byID   map[string]*domain.Expense
	nextID int
	err    error
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{byID: make(map[string]*domain.Expense)}
}

func (r *stubExpenseRepo) Insert(_ context.Context, e *domain.Expense) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.nextID++
	clone := *e
	clone.ID = fmt.Sprintf("exp_%d", r.nextID)
	r.byID[clone.ID] = &clone
	return clone.ID, nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, id string) (*domain.Expense, error) {
	if r.err != nil {
		return nil, r.err
	}
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubExpenseRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubExpenseRepo) ListPersonalByPayer(_ context.Context, userID string) ([]*domain.Expense, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Expense
	for _, e := range r.byID {
		if e.GroupID == "" && e.PaidByUserID == userID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubExpenseRepo) ListPersonalInvolving(_ context.Context, userID string) ([]*domain.Expense, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Expense
	for _, e := range r.byID {
		if e.GroupID == "" && e.Involves(userID) {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubExpenseRepo) ListPersonal(_ context.Context) ([]*domain.Expense, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Expense
	for _, e := range r.byID {
		if e.GroupID == "" {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubExpenseRepo) ListByGroup(_ context.Context, groupID string) ([]*domain.Expense, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Expense
	for _, e := range r.byID {
		if e.GroupID == groupID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubExpenseRepo) ListInvolvingSince(_ context.Context, userID string, since time.Time) ([]*domain.Expense, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Expense
	for _, e := range r.byID {
		if e.Involves(userID) && !e.Date.Before(since) {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubSettlementRepo struct {
	byID   map[string]*domain.Settlement
	nextID int
	err    error
}

func newStubSettlementRepo() *stubSettlementRepo {
	return &stubSettlementRepo{byID: make(map[string]*domain.Settlement)}
}

func (r *stubSettlementRepo) Insert(_ context.Context, s *domain.Settlement) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.nextID++
	clone := *s
	clone.ID = fmt.Sprintf("stl_%d", r.nextID)
	r.byID[clone.ID] = &clone
	return clone.ID, nil
}

func (r *stubSettlementRepo) ListPersonalBetween(_ context.Context, userA, userB string) ([]*domain.Settlement, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Settlement
	for _, s := range r.byID {
		if s.GroupID == "" && s.Between(userA, userB) {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSettlementRepo) ListPersonalInvolving(_ context.Context, userID string) ([]*domain.Settlement, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Settlement
	for _, s := range r.byID {
		if s.GroupID == "" && (s.PaidByUserID == userID || s.ReceivedByUserID == userID) {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSettlementRepo) ListPersonal(_ context.Context) ([]*domain.Settlement, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Settlement
	for _, s := range r.byID {
		if s.GroupID == "" {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSettlementRepo) ListByGroup(_ context.Context, groupID string) ([]*domain.Settlement, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Settlement
	for _, s := range r.byID {
		if s.GroupID == groupID {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubGroupRepo struct {
	byID   map[string]*domain.Group
	nextID int
	err    error
}

func newStubGroupRepo() *stubGroupRepo {
	return &stubGroupRepo{byID: make(map[string]*domain.Group)}
}

func (r *stubGroupRepo) seed(id, name string, memberIDs ...string) *domain.Group {
	g := &domain.Group{ID: id, Name: name, CreatedBy: memberIDs[0]}
	for i, uid := range memberIDs {
		role := domain.MemberRoleMember
		if i == 0 {
			role = domain.MemberRoleAdmin
		}
		g.Members = append(g.Members, domain.Member{UserID: uid, Role: role})
	}
	r.byID[id] = g
	return g
}

func (r *stubGroupRepo) Insert(_ context.Context, g *domain.Group) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.nextID++
	clone := *g
	clone.ID = fmt.Sprintf("grp_%d", r.nextID)
	r.byID[clone.ID] = &clone
	return clone.ID, nil
}

func (r *stubGroupRepo) FindByID(_ context.Context, id string) (*domain.Group, error) {
	if r.err != nil {
		return nil, r.err
	}
	g, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *stubGroupRepo) ListByMember(_ context.Context, userID string) ([]*domain.Group, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Group
	for _, g := range r.byID {
		if g.HasMember(userID) {
			clone := *g
			out = append(out, &clone)
		}
	}
	return out, nil
}
