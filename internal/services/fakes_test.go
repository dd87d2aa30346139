package services

import (
	"context"
	"time"

	"tasktracker/internal/models"
)

// In-memory doubles for the repository interfaces. FindAll evaluates the
// filter with models.TaskFilter.Matches, the in-memory form of the same
// predicate the SQL repository pushes down, so the service tests exercise
// exactly the contract the two implementations share.

type fakeTaskRepo struct {
	seq       int64
	tasks     []models.Task
	catNames  map[int64]string
	userNames map[int64]string
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		catNames:  map[int64]string{},
		userNames: map[int64]string{},
	}
}

func (r *fakeTaskRepo) resolveNames(t *models.Task) {
	t.CategoryName = r.catNames[t.CategoryID]
	t.OwnerName = r.userNames[t.UserID]
}

func (r *fakeTaskRepo) Store(_ context.Context, task *models.Task) error {
	r.seq++
	task.ID = r.seq
	r.tasks = append(r.tasks, *task)
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			t := r.tasks[i]
			r.resolveNames(&t)
			return &t, nil
		}
	}
	return nil, nil
}

func (r *fakeTaskRepo) FindAll(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for i := range r.tasks {
		if filter.Matches(&r.tasks[i]) {
			t := r.tasks[i]
			r.resolveNames(&t)
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	for i := range r.tasks {
		if r.tasks[i].ID == task.ID {
			r.tasks[i] = *task
			return nil
		}
	}
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeTaskRepo) CountByCategory(_ context.Context, categoryID int64) (int, error) {
	n := 0
	for i := range r.tasks {
		if r.tasks[i].CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

type fakeCategoryRepo struct {
	seq        int64
	categories map[int64]models.TaskCategory
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[int64]models.TaskCategory{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *models.TaskCategory) error {
	r.seq++
	c.ID = r.seq
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*models.TaskCategory, error) {
	if c, ok := r.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *models.TaskCategory) error {
	r.categories[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]models.TaskCategory, error) {
	var out []models.TaskCategory
	for i := int64(1); i <= r.seq; i++ {
		if c, ok := r.categories[i]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.categories[id]
	return ok, nil
}

type fakeUserRepo struct {
	seq   int64
	users map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (r *fakeUserRepo) Create(u *models.User) error {
	r.seq++
	u.ID = r.seq
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *models.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdatePassword(id int64, hash string) error {
	if u, ok := r.users[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (r *fakeUserRepo) Delete(id int64) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*models.User, error) {
	var out []*models.User
	for i := int64(1); i <= r.seq; i++ {
		if u, ok := r.users[i]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ExistsByID(id int64) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) UpdateRefresh(userID int64, token string, expiresAt time.Time) error {
	if u, ok := r.users[userID]; ok {
		u.RefreshToken = &token
		u.RefreshExpiresAt = &expiresAt
		u.RefreshRevoked = false
	}
	return nil
}

func (r *fakeUserRepo) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	for _, u := range r.users {
		if u.RefreshToken != nil && *u.RefreshToken == oldToken && !u.RefreshRevoked {
			u.RefreshToken = &newToken
			u.RefreshExpiresAt = &newExpiresAt
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ClearRefresh(userID int64) error {
	if u, ok := r.users[userID]; ok {
		u.RefreshToken = nil
		u.RefreshExpiresAt = nil
		u.RefreshRevoked = false
	}
	return nil
}

func (r *fakeUserRepo) GetByRefreshToken(token string) (*models.User, error) {
	for _, u := range r.users {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
