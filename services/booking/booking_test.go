package booking

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	bookingRepo "worknook/database/repository/booking"
	serviceRepo "worknook/database/repository/service"
	workerRepo "worknook/database/repository/worker"
	"worknook/models"
	"worknook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWorkerRepo is an in-memory WorkerRepository.
type fakeWorkerRepo struct {
	mu      sync.Mutex
	workers map[string]*models.Worker
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{workers: make(map[string]*models.Worker)}
}

func (r *fakeWorkerRepo) Create(w *models.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.workers[w.ID] = &cp
	return nil
}

func (r *fakeWorkerRepo) GetByID(id string) (*models.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workers[id]
	if !ok {
		return nil, workerRepo.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWorkerRepo) GetByUserID(userID string) (*models.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.workers {
		if w.UserID == userID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, workerRepo.ErrNotFound
}

func (r *fakeWorkerRepo) List(serviceType string) ([]models.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Worker
	for _, w := range r.workers {
		if serviceType == "" || w.ServiceType == serviceType {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWorkerRepo) UpdateWithDocument(id string, updateDoc interface{}) error {
	return nil
}

// fakeServiceRepo is an in-memory ServiceRepository.
type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[string]*models.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[string]*models.Service)}
}

func (r *fakeServiceRepo) Create(s *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) GetByID(id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return nil, serviceRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeServiceRepo) List(serviceType string) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Service
	for _, s := range r.services {
		if serviceType == "" || s.ServiceType == serviceType {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) UpdateWithDocument(id string, updateDoc interface{}) error {
	return nil
}

func (r *fakeServiceRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return serviceRepo.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

// fakeBookingRepo is an in-memory BookingRepository with the same conditional
// write semantics as the mongo implementation.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	workers  *fakeWorkerRepo

	// statusConflictOnce, when set, makes the next UpdateStatus fail with
	// ErrStatusConflict after applying the given concurrent mutation.
	statusConflictOnce func(b *models.Booking)
	// reputationConflictOnce makes the next Rate fail once as if the worker
	// document moved under the transaction.
	reputationConflictOnce bool
}

func newFakeBookingRepo(workers *fakeWorkerRepo) *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking), workers: workers}
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) ListByClient(clientID string) ([]models.BookingView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BookingView
	for _, b := range r.bookings {
		if b.ClientID == clientID {
			out = append(out, models.BookingView{Booking: *b})
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (r *fakeBookingRepo) ListByWorker(workerID string) ([]models.BookingView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BookingView
	for _, b := range r.bookings {
		if b.WorkerID == workerID {
			out = append(out, models.BookingView{Booking: *b})
		}
	}
	sortByDateDesc(out)
	return out, nil
}

// sortByDateDesc mirrors the store's newest-date-first listing order.
func sortByDateDesc(views []models.BookingView) {
	sort.Slice(views, func(i, j int) bool {
		return views[i].Date.After(views[j].Date)
	})
}

func (r *fakeBookingRepo) UpdateStatus(id string, from, to models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrStatusConflict
	}
	if r.statusConflictOnce != nil {
		mutate := r.statusConflictOnce
		r.statusConflictOnce = nil
		mutate(b)
		return bookingRepo.ErrStatusConflict
	}
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	return nil
}

func (r *fakeBookingRepo) Rate(ctx context.Context, booking *models.Booking, rating models.BookingRating) (*models.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[booking.ID]
	if !ok || b.Status != models.StatusCompleted || b.Rating != nil {
		return nil, bookingRepo.ErrRatingTaken
	}
	if r.reputationConflictOnce {
		r.reputationConflictOnce = false
		return nil, bookingRepo.ErrReputationConflict
	}
	w, err := r.workers.GetByID(booking.WorkerID)
	if err != nil {
		return nil, err
	}
	w.Rating = w.NextRating(rating.Score)
	w.TotalRatings++
	if err := r.workers.Create(w); err != nil {
		return nil, err
	}
	rt := rating
	b.Rating = &rt
	return w, nil
}

type testEnv struct {
	svc      *DefaultBookingService
	bookings *fakeBookingRepo
	services *fakeServiceRepo
	workers  *fakeWorkerRepo
	client   models.ClientPrincipal
	worker   models.WorkerPrincipal
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	workers := newFakeWorkerRepo()
	services := newFakeServiceRepo()
	bookings := newFakeBookingRepo(workers)

	require.NoError(t, workers.Create(&models.Worker{
		ID:          "worker-1",
		UserID:      "worker-user-1",
		ServiceType: "plumbing",
	}))
	require.NoError(t, services.Create(&models.Service{
		ID:          "svc-1",
		WorkerID:    "worker-1",
		Title:       "Pipe repair",
		ServiceType: "plumbing",
		Price:       45,
		IsAvailable: true,
	}))

	return &testEnv{
		svc: &DefaultBookingService{
			Repo:        bookings,
			ServiceRepo: services,
			WorkerRepo:  workers,
		},
		bookings: bookings,
		services: services,
		workers:  workers,
		client:   models.ClientPrincipal{ID: "client-1"},
		worker:   models.WorkerPrincipal{ID: "worker-user-1"},
	}
}

func (e *testEnv) createBooking(t *testing.T) *models.Booking {
	t.Helper()
	return e.createBookingOn(t, time.Now().Add(24*time.Hour))
}

func (e *testEnv) createBookingOn(t *testing.T, date time.Time) *models.Booking {
	t.Helper()
	b, err := e.svc.Create(e.client, CreateInput{
		ServiceID: "svc-1",
		Date:      date,
	})
	require.NoError(t, err)
	return b
}

func TestCreateBooking(t *testing.T) {
	env := newTestEnv(t)

	b, err := env.svc.Create(env.client, CreateInput{
		ServiceID: "svc-1",
		Date:      time.Now().Add(48 * time.Hour),
		Note:      "gate code 4412",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, "client-1", b.ClientID)
	assert.Equal(t, "svc-1", b.ServiceID)
	// The owning worker is snapshotted from the service.
	assert.Equal(t, "worker-1", b.WorkerID)
	assert.Nil(t, b.Rating)
	assert.NotEmpty(t, b.ID)
}

func TestCreateBookingValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(env.client, CreateInput{Date: time.Now()})
	assert.Equal(t, utils.CodeInvalidInput, utils.ErrorCode(err))

	_, err = env.svc.Create(env.client, CreateInput{ServiceID: "svc-1"})
	assert.Equal(t, utils.CodeInvalidInput, utils.ErrorCode(err))

	_, err = env.svc.Create(env.client, CreateInput{ServiceID: "missing", Date: time.Now()})
	assert.Equal(t, utils.CodeNotFound, utils.ErrorCode(err))
}

func TestCreateBookingUnavailableService(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.services.Create(&models.Service{
		ID:          "svc-2",
		WorkerID:    "worker-1",
		ServiceType: "plumbing",
		IsAvailable: false,
	}))

	_, err := env.svc.Create(env.client, CreateInput{ServiceID: "svc-2", Date: time.Now()})
	assert.Equal(t, utils.CodeUnavailable, utils.ErrorCode(err))
}

func TestListForClientAndWorker(t *testing.T) {
	env := newTestEnv(t)
	b := env.createBooking(t)

	mine, err := env.svc.ListForClient(env.client)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, b.ID, mine[0].ID)

	assigned, err := env.svc.ListForWorker(env.worker)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, b.ID, assigned[0].ID)

	other, err := env.svc.ListForClient(models.ClientPrincipal{ID: "client-2"})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestListBookingsNewestDateFirst(t *testing.T) {
	env := newTestEnv(t)
	base := time.Now()

	// Created out of order on purpose.
	oldest := env.createBookingOn(t, base.Add(24*time.Hour))
	newest := env.createBookingOn(t, base.Add(72*time.Hour))
	middle := env.createBookingOn(t, base.Add(48*time.Hour))

	mine, err := env.svc.ListForClient(env.client)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, newest.ID, mine[0].ID)
	assert.Equal(t, middle.ID, mine[1].ID)
	assert.Equal(t, oldest.ID, mine[2].ID)

	assigned, err := env.svc.ListForWorker(env.worker)
	require.NoError(t, err)
	require.Len(t, assigned, 3)
	assert.Equal(t, newest.ID, assigned[0].ID)
	assert.Equal(t, middle.ID, assigned[1].ID)
	assert.Equal(t, oldest.ID, assigned[2].ID)
}

func TestListForWorkerWithoutProfile(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ListForWorker(models.WorkerPrincipal{ID: "no-profile"})
	assert.Equal(t, utils.CodeNotFound, utils.ErrorCode(err))
}
