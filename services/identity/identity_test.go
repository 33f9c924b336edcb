package identity

import (
	"context"
	"testing"

	userRepo "worknook/database/repository/user"
	workerRepo "worknook/database/repository/worker"
	"worknook/models"
	"worknook/services/worker"
	"worknook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// fakeUserRepo is an in-memory UserRepository that applies $set patch
// documents the way the mongo implementation does.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) Create(u *models.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) UpdateWithDocument(id string, updateDoc interface{}) error {
	u, ok := r.users[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	if set, ok := setFields(updateDoc); ok {
		for field, value := range set {
			switch field {
			case "name":
				u.Name = value.(string)
			case "phone":
				u.Phone = value.(string)
			case "location":
				u.Location = value.(string)
			case "address":
				u.Address = value.(string)
			}
		}
	}
	return nil
}

type fakeWorkerRepo struct {
	workers map[string]*models.Worker
}

func (r *fakeWorkerRepo) Create(w *models.Worker) error {
	cp := *w
	r.workers[w.ID] = &cp
	return nil
}

func (r *fakeWorkerRepo) GetByID(id string) (*models.Worker, error) {
	w, ok := r.workers[id]
	if !ok {
		return nil, workerRepo.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWorkerRepo) GetByUserID(userID string) (*models.Worker, error) {
	for _, w := range r.workers {
		if w.UserID == userID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, workerRepo.ErrNotFound
}

func (r *fakeWorkerRepo) List(serviceType string) ([]models.Worker, error) {
	return nil, nil
}

func (r *fakeWorkerRepo) UpdateWithDocument(id string, updateDoc interface{}) error {
	w, ok := r.workers[id]
	if !ok {
		return workerRepo.ErrNotFound
	}
	if set, ok := setFields(updateDoc); ok {
		for field, value := range set {
			switch field {
			case "service_type":
				w.ServiceType = value.(string)
			case "experience":
				w.Experience = value.(string)
			case "bio":
				w.Bio = value.(string)
			}
		}
	}
	return nil
}

func setFields(updateDoc interface{}) (bson.M, bool) {
	doc, ok := updateDoc.(bson.M)
	if !ok {
		return nil, false
	}
	set, ok := doc["$set"].(bson.M)
	return set, ok
}

// fakeStorage records uploads and deletions and hands back deterministic
// references.
type fakeStorage struct {
	uploads []string
	deleted []string
}

func (s *fakeStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	s.uploads = append(s.uploads, localFilePath)
	return destFolder + "/doc-1", nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

func newIdentityEnv() (*DefaultIdentityService, *fakeUserRepo, *fakeWorkerRepo, *fakeStorage) {
	users := &fakeUserRepo{users: make(map[string]*models.User)}
	workers := &fakeWorkerRepo{workers: make(map[string]*models.Worker)}
	store := &fakeStorage{}
	svc := &DefaultIdentityService{
		Repo:       users,
		WorkerRepo: workers,
		Workers:    &worker.DefaultWorkerService{Repo: workers, UserRepo: users},
		Storage:    store,
	}
	return svc, users, workers, store
}

func clientInput() RegisterClientInput {
	return RegisterClientInput{
		Name:     "Jude",
		Email:    "jude@example.com",
		Phone:    "0712000111",
		Location: "Brookfield",
		Password: "hunter22",
	}
}

func workerInput() RegisterWorkerInput {
	return RegisterWorkerInput{
		Name:         "Asha",
		Email:        "asha@example.com",
		Phone:        "0712000222",
		Address:      "14 Mill Lane",
		ServiceType:  "plumbing",
		Experience:   "6 years",
		Bio:          "Licensed plumber",
		Password:     "hunter22",
		DocumentPath: "/tmp/id.png",
	}
}

func TestRegisterClient(t *testing.T) {
	svc, _, _, _ := newIdentityEnv()

	session, err := svc.RegisterClient(clientInput())
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, models.RoleClient, session.User.Role)
	assert.Equal(t, "Brookfield", session.User.Location)
	assert.NotEmpty(t, session.User.PasswordHash)
	assert.NotEqual(t, "hunter22", session.User.PasswordHash)
}

func TestRegisterClientValidation(t *testing.T) {
	svc, _, _, _ := newIdentityEnv()

	input := clientInput()
	input.Location = ""
	_, err := svc.RegisterClient(input)
	assert.Equal(t, utils.CodeInvalidInput, utils.ErrorCode(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newIdentityEnv()

	_, err := svc.RegisterClient(clientInput())
	require.NoError(t, err)

	// Same email, different case, still taken.
	input := clientInput()
	input.Email = "Jude@Example.com"
	_, err = svc.RegisterClient(input)
	assert.Equal(t, utils.CodeConflict, utils.ErrorCode(err))
}

func TestRegisterWorker(t *testing.T) {
	svc, _, workers, store := newIdentityEnv()

	session, err := svc.RegisterWorker(workerInput())
	require.NoError(t, err)
	assert.Equal(t, models.RoleWorker, session.User.Role)
	assert.Equal(t, "14 Mill Lane", session.User.Address)

	// The document went through the intake and its reference landed on the
	// profile.
	require.Len(t, store.uploads, 1)
	w, err := workers.GetByUserID(session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ids/doc-1", w.IDDocument)
	assert.Equal(t, "plumbing", w.ServiceType)
}

func TestRegisterWorkerValidation(t *testing.T) {
	svc, _, _, _ := newIdentityEnv()

	input := workerInput()
	input.DocumentPath = ""
	_, err := svc.RegisterWorker(input)
	assert.Equal(t, utils.CodeInvalidInput, utils.ErrorCode(err))

	input = workerInput()
	input.ServiceType = "welding"
	_, err = svc.RegisterWorker(input)
	assert.Equal(t, utils.CodeInvalidInput, utils.ErrorCode(err))
}

func TestRegisterWorkerDiscardsDocumentOnFailure(t *testing.T) {
	svc, _, _, store := newIdentityEnv()

	// Passes the registration checks but fails profile creation, which
	// happens after the document upload.
	input := workerInput()
	input.Bio = ""
	_, err := svc.RegisterWorker(input)
	assert.Equal(t, utils.CodeInvalidInput, utils.ErrorCode(err))

	// The uploaded document was discarded, not orphaned.
	require.Len(t, store.uploads, 1)
	assert.Equal(t, []string{"ids/doc-1"}, store.deleted)
}

func TestAuthenticate(t *testing.T) {
	svc, _, _, _ := newIdentityEnv()
	_, err := svc.RegisterClient(clientInput())
	require.NoError(t, err)

	session, err := svc.Authenticate("jude@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	_, err = svc.Authenticate("jude@example.com", "wrong")
	assert.Equal(t, utils.CodeUnauthenticated, utils.ErrorCode(err))

	_, err = svc.Authenticate("nobody@example.com", "hunter22")
	assert.Equal(t, utils.CodeUnauthenticated, utils.ErrorCode(err))
}

func TestResolvePrincipal(t *testing.T) {
	svc, _, _, _ := newIdentityEnv()
	session, err := svc.RegisterClient(clientInput())
	require.NoError(t, err)

	p, err := svc.ResolvePrincipal(session.User.ID, models.RoleClient)
	require.NoError(t, err)
	assert.IsType(t, models.ClientPrincipal{}, p)
	assert.Equal(t, session.User.ID, p.PrincipalID())

	// A stale or forged role claim is rejected.
	_, err = svc.ResolvePrincipal(session.User.ID, models.RoleWorker)
	assert.Equal(t, utils.CodeUnauthenticated, utils.ErrorCode(err))

	_, err = svc.ResolvePrincipal("missing", models.RoleClient)
	assert.Equal(t, utils.CodeUnauthenticated, utils.ErrorCode(err))
}

func TestGetProfileAttachesWorker(t *testing.T) {
	svc, _, _, _ := newIdentityEnv()
	session, err := svc.RegisterWorker(workerInput())
	require.NoError(t, err)

	view, err := svc.GetProfile(models.WorkerPrincipal{ID: session.User.ID})
	require.NoError(t, err)
	require.NotNil(t, view.Worker)
	assert.Equal(t, "plumbing", view.Worker.ServiceType)
}

func TestUpdateProfileClient(t *testing.T) {
	svc, _, _, _ := newIdentityEnv()
	session, err := svc.RegisterClient(clientInput())
	require.NoError(t, err)
	p := models.ClientPrincipal{ID: session.User.ID}

	view, err := svc.UpdateProfile(p, ProfileUpdate{Name: "Jude K", Location: "Riverside"})
	require.NoError(t, err)
	assert.Equal(t, "Jude K", view.Name)
	assert.Equal(t, "Riverside", view.Location)

	// Empty fields are no-ops.
	view, err = svc.UpdateProfile(p, ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Jude K", view.Name)
}

func TestUpdateProfileWorker(t *testing.T) {
	svc, _, _, _ := newIdentityEnv()
	session, err := svc.RegisterWorker(workerInput())
	require.NoError(t, err)
	p := models.WorkerPrincipal{ID: session.User.ID}

	view, err := svc.UpdateProfile(p, ProfileUpdate{
		Address:    "9 Forge Street",
		Bio:        "Plumbing and heating",
		Experience: "7 years",
	})
	require.NoError(t, err)
	assert.Equal(t, "9 Forge Street", view.Address)
	require.NotNil(t, view.Worker)
	assert.Equal(t, "Plumbing and heating", view.Worker.Bio)
	assert.Equal(t, "7 years", view.Worker.Experience)

	_, err = svc.UpdateProfile(p, ProfileUpdate{ServiceType: "welding"})
	assert.Equal(t, utils.CodeInvalidInput, utils.ErrorCode(err))
}
