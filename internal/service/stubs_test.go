package service

import (
	"context"
	"time"

	"github.com/carlosargenal/enlaceibabackend/internal/model"
	"github.com/carlosargenal/enlaceibabackend/internal/queue"
	"github.com/carlosargenal/enlaceibabackend/internal/repository"
)

type userStoreStub struct {
	createFn        func(context.Context, *model.User, string) (uint64, error)
	getByEmailFn    func(context.Context, string) (*model.User, error)
	getByIDFn       func(context.Context, uint64) (*model.User, error)
	emailExistsFn   func(context.Context, string) (bool, error)
	updateLoginFn   func(context.Context, uint64, string, time.Time) error
	clearRefreshFn  func(context.Context, uint64) error
	findByRefreshFn func(context.Context, uint64, string) (*model.User, error)
}

func (s *userStoreStub) CreateWithCredential(ctx context.Context, u *model.User, hash string) (uint64, error) {
	return s.createFn(ctx, u, hash)
}
func (s *userStoreStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userStoreStub) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userStoreStub) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.emailExistsFn(ctx, email)
}
func (s *userStoreStub) UpdateLogin(ctx context.Context, id uint64, hash string, at time.Time) error {
	return s.updateLoginFn(ctx, id, hash, at)
}
func (s *userStoreStub) ClearRefreshToken(ctx context.Context, id uint64) error {
	return s.clearRefreshFn(ctx, id)
}
func (s *userStoreStub) FindByRefreshToken(ctx context.Context, id uint64, hash string) (*model.User, error) {
	return s.findByRefreshFn(ctx, id, hash)
}

func noopUserStore() *userStoreStub {
	return &userStoreStub{
		createFn:        func(context.Context, *model.User, string) (uint64, error) { return 1, nil },
		getByEmailFn:    func(context.Context, string) (*model.User, error) { return &model.User{}, nil },
		getByIDFn:       func(context.Context, uint64) (*model.User, error) { return &model.User{}, nil },
		emailExistsFn:   func(context.Context, string) (bool, error) { return false, nil },
		updateLoginFn:   func(context.Context, uint64, string, time.Time) error { return nil },
		clearRefreshFn:  func(context.Context, uint64) error { return nil },
		findByRefreshFn: func(context.Context, uint64, string) (*model.User, error) { return &model.User{}, nil },
	}
}

type credentialStoreStub struct {
	getByUserIDFn     func(context.Context, uint64) (*model.Credential, error)
	setResetTokenFn   func(context.Context, uint64, string, time.Time) error
	getByResetTokenFn func(context.Context, string) (*model.Credential, error)
	resetPasswordFn   func(context.Context, string, string, time.Time) (bool, error)
	updatePasswordFn  func(context.Context, uint64, string) error
}

func (s *credentialStoreStub) GetByUserID(ctx context.Context, id uint64) (*model.Credential, error) {
	return s.getByUserIDFn(ctx, id)
}
func (s *credentialStoreStub) SetResetToken(ctx context.Context, id uint64, hash string, exp time.Time) error {
	return s.setResetTokenFn(ctx, id, hash, exp)
}
func (s *credentialStoreStub) GetByResetToken(ctx context.Context, hash string) (*model.Credential, error) {
	return s.getByResetTokenFn(ctx, hash)
}
func (s *credentialStoreStub) ResetPassword(ctx context.Context, tokenHash, newHash string, now time.Time) (bool, error) {
	return s.resetPasswordFn(ctx, tokenHash, newHash, now)
}
func (s *credentialStoreStub) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	return s.updatePasswordFn(ctx, id, hash)
}

func noopCredentialStore() *credentialStoreStub {
	return &credentialStoreStub{
		getByUserIDFn:     func(context.Context, uint64) (*model.Credential, error) { return &model.Credential{}, nil },
		setResetTokenFn:   func(context.Context, uint64, string, time.Time) error { return nil },
		getByResetTokenFn: func(context.Context, string) (*model.Credential, error) { return &model.Credential{}, nil },
		resetPasswordFn:   func(context.Context, string, string, time.Time) (bool, error) { return true, nil },
		updatePasswordFn:  func(context.Context, uint64, string) error { return nil },
	}
}

type notifierStub struct {
	sent []queue.PasswordResetRequested
	err  error
}

func (n *notifierStub) PublishPasswordReset(_ context.Context, ev queue.PasswordResetRequested) error {
	n.sent = append(n.sent, ev)
	return n.err
}

type eventStoreStub struct {
	createFn  func(context.Context, model.Fields) (uint64, error)
	getByIDFn func(context.Context, uint64) (*model.Event, error)
	updateFn  func(context.Context, uint64, model.Fields) error
	deleteFn  func(context.Context, uint64) error
	listFn    func(context.Context, repository.EventQuery) ([]model.Event, error)
	countFn   func(context.Context, repository.EventQuery) (int64, error)
}

func (s *eventStoreStub) Create(ctx context.Context, f model.Fields) (uint64, error) {
	return s.createFn(ctx, f)
}
func (s *eventStoreStub) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	return s.getByIDFn(ctx, id)
}
func (s *eventStoreStub) Update(ctx context.Context, id uint64, f model.Fields) error {
	return s.updateFn(ctx, id, f)
}
func (s *eventStoreStub) Delete(ctx context.Context, id uint64) error {
	return s.deleteFn(ctx, id)
}
func (s *eventStoreStub) List(ctx context.Context, q repository.EventQuery) ([]model.Event, error) {
	return s.listFn(ctx, q)
}
func (s *eventStoreStub) Count(ctx context.Context, q repository.EventQuery) (int64, error) {
	return s.countFn(ctx, q)
}

func noopEventStore() *eventStoreStub {
	return &eventStoreStub{
		createFn:  func(context.Context, model.Fields) (uint64, error) { return 1, nil },
		getByIDFn: func(context.Context, uint64) (*model.Event, error) { return &model.Event{}, nil },
		updateFn:  func(context.Context, uint64, model.Fields) error { return nil },
		deleteFn:  func(context.Context, uint64) error { return nil },
		listFn:    func(context.Context, repository.EventQuery) ([]model.Event, error) { return nil, nil },
		countFn:   func(context.Context, repository.EventQuery) (int64, error) { return 0, nil },
	}
}

type blogStoreStub struct {
	createFn  func(context.Context, model.Fields) (uint64, error)
	getByIDFn func(context.Context, uint64) (*model.Blog, error)
	updateFn  func(context.Context, uint64, model.Fields) error
	deleteFn  func(context.Context, uint64) error
	listFn    func(context.Context, repository.BlogQuery) ([]model.Blog, error)
	countFn   func(context.Context, repository.BlogQuery) (int64, error)
}

func (s *blogStoreStub) Create(ctx context.Context, f model.Fields) (uint64, error) {
	return s.createFn(ctx, f)
}
func (s *blogStoreStub) GetByID(ctx context.Context, id uint64) (*model.Blog, error) {
	return s.getByIDFn(ctx, id)
}
func (s *blogStoreStub) Update(ctx context.Context, id uint64, f model.Fields) error {
	return s.updateFn(ctx, id, f)
}
func (s *blogStoreStub) Delete(ctx context.Context, id uint64) error {
	return s.deleteFn(ctx, id)
}
func (s *blogStoreStub) List(ctx context.Context, q repository.BlogQuery) ([]model.Blog, error) {
	return s.listFn(ctx, q)
}
func (s *blogStoreStub) Count(ctx context.Context, q repository.BlogQuery) (int64, error) {
	return s.countFn(ctx, q)
}

func noopBlogStore() *blogStoreStub {
	return &blogStoreStub{
		createFn:  func(context.Context, model.Fields) (uint64, error) { return 1, nil },
		getByIDFn: func(context.Context, uint64) (*model.Blog, error) { return &model.Blog{}, nil },
		updateFn:  func(context.Context, uint64, model.Fields) error { return nil },
		deleteFn:  func(context.Context, uint64) error { return nil },
		listFn:    func(context.Context, repository.BlogQuery) ([]model.Blog, error) { return nil, nil },
		countFn:   func(context.Context, repository.BlogQuery) (int64, error) { return 0, nil },
	}
}

type reviewStoreStub struct {
	createFn  func(context.Context, model.Fields) (uint64, error)
	getByIDFn func(context.Context, uint64) (*model.Review, error)
	updateFn  func(context.Context, uint64, model.Fields) error
	deleteFn  func(context.Context, uint64) error
	listFn    func(context.Context, repository.ReviewQuery) ([]model.Review, error)
	countFn   func(context.Context, repository.ReviewQuery) (int64, error)
	likeFn    func(context.Context, uint64) error
	dislikeFn func(context.Context, uint64) error
}

func (s *reviewStoreStub) Create(ctx context.Context, f model.Fields) (uint64, error) {
	return s.createFn(ctx, f)
}
func (s *reviewStoreStub) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reviewStoreStub) Update(ctx context.Context, id uint64, f model.Fields) error {
	return s.updateFn(ctx, id, f)
}
func (s *reviewStoreStub) Delete(ctx context.Context, id uint64) error {
	return s.deleteFn(ctx, id)
}
func (s *reviewStoreStub) List(ctx context.Context, q repository.ReviewQuery) ([]model.Review, error) {
	return s.listFn(ctx, q)
}
func (s *reviewStoreStub) Count(ctx context.Context, q repository.ReviewQuery) (int64, error) {
	return s.countFn(ctx, q)
}
func (s *reviewStoreStub) IncrementLikes(ctx context.Context, id uint64) error {
	return s.likeFn(ctx, id)
}
func (s *reviewStoreStub) IncrementDislikes(ctx context.Context, id uint64) error {
	return s.dislikeFn(ctx, id)
}

func noopReviewStore() *reviewStoreStub {
	return &reviewStoreStub{
		createFn:  func(context.Context, model.Fields) (uint64, error) { return 1, nil },
		getByIDFn: func(context.Context, uint64) (*model.Review, error) { return &model.Review{}, nil },
		updateFn:  func(context.Context, uint64, model.Fields) error { return nil },
		deleteFn:  func(context.Context, uint64) error { return nil },
		listFn:    func(context.Context, repository.ReviewQuery) ([]model.Review, error) { return nil, nil },
		countFn:   func(context.Context, repository.ReviewQuery) (int64, error) { return 0, nil },
		likeFn:    func(context.Context, uint64) error { return nil },
		dislikeFn: func(context.Context, uint64) error { return nil },
	}
}
