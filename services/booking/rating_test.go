package booking

import (
	"math"
	"sync"
	"testing"

	"worknook/models"
	"worknook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) completedBooking(t *testing.T) *models.Booking {
	t.Helper()
	b := e.createBooking(t)
	_, err := e.svc.Transition(b.ID, e.worker, models.StatusConfirmed)
	require.NoError(t, err)
	_, err = e.svc.Transition(b.ID, e.worker, models.StatusCompleted)
	require.NoError(t, err)
	b.Status = models.StatusCompleted
	return b
}

func TestRateBooking(t *testing.T) {
	env := newTestEnv(t)
	b := env.completedBooking(t)

	rated, err := env.svc.Rate(b.ID, env.client, RateInput{Score: 4, Comment: "solid work"})
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 4.0, rated.Rating.Score)
	assert.Equal(t, "solid work", rated.Rating.Comment)

	w, err := env.workers.GetByID("worker-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, w.Rating)
	assert.Equal(t, 1, w.TotalRatings)
}

func TestRateFoldsIntoReputation(t *testing.T) {
	env := newTestEnv(t)

	b1 := env.completedBooking(t)
	_, err := env.svc.Rate(b1.ID, env.client, RateInput{Score: 4})
	require.NoError(t, err)

	b2 := env.completedBooking(t)
	_, err = env.svc.Rate(b2.ID, env.client, RateInput{Score: 5})
	require.NoError(t, err)

	b3 := env.completedBooking(t)
	_, err = env.svc.Rate(b3.ID, env.client, RateInput{Score: 4})
	require.NoError(t, err)

	w, err := env.workers.GetByID("worker-1")
	require.NoError(t, err)
	// 4, then (4+5)/2 = 4.5, then (4.5*2+4)/3 = 4.3333... -> 4.33
	assert.Equal(t, 4.33, w.Rating)
	assert.Equal(t, 3, w.TotalRatings)
}

func TestRateValidation(t *testing.T) {
	env := newTestEnv(t)
	b := env.completedBooking(t)

	for _, score := range []float64{0, 0.5, 5.5, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := env.svc.Rate(b.ID, env.client, RateInput{Score: score})
		assert.Equalf(t, utils.CodeInvalidInput, utils.ErrorCode(err), "score %v", score)
	}

	// Fractional scores inside the range are fine.
	_, err := env.svc.Rate(b.ID, env.client, RateInput{Score: 3.5})
	require.NoError(t, err)
}

func TestRateOwnership(t *testing.T) {
	env := newTestEnv(t)
	b := env.completedBooking(t)

	_, err := env.svc.Rate(b.ID, models.ClientPrincipal{ID: "client-2"}, RateInput{Score: 5})
	assert.Equal(t, utils.CodeForbidden, utils.ErrorCode(err))

	// Ownership is checked before the score, so a stranger with a bad score
	// still sees Forbidden.
	_, err = env.svc.Rate(b.ID, models.ClientPrincipal{ID: "client-2"}, RateInput{Score: 99})
	assert.Equal(t, utils.CodeForbidden, utils.ErrorCode(err))
}

func TestRateRequiresCompletedBooking(t *testing.T) {
	env := newTestEnv(t)

	b := env.createBooking(t)
	_, err := env.svc.Rate(b.ID, env.client, RateInput{Score: 4})
	assert.Equal(t, utils.CodeInvalidState, utils.ErrorCode(err))

	_, err = env.svc.Transition(b.ID, env.worker, models.StatusConfirmed)
	require.NoError(t, err)
	_, err = env.svc.Rate(b.ID, env.client, RateInput{Score: 4})
	assert.Equal(t, utils.CodeInvalidState, utils.ErrorCode(err))

	_, err = env.svc.Transition(b.ID, env.worker, models.StatusCancelled)
	require.NoError(t, err)
	_, err = env.svc.Rate(b.ID, env.client, RateInput{Score: 4})
	assert.Equal(t, utils.CodeInvalidState, utils.ErrorCode(err))
}

func TestRateUnknownBooking(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Rate("missing", env.client, RateInput{Score: 4})
	assert.Equal(t, utils.CodeNotFound, utils.ErrorCode(err))
}

func TestRateOnlyOnce(t *testing.T) {
	env := newTestEnv(t)
	b := env.completedBooking(t)

	_, err := env.svc.Rate(b.ID, env.client, RateInput{Score: 4})
	require.NoError(t, err)

	_, err = env.svc.Rate(b.ID, env.client, RateInput{Score: 5})
	assert.Equal(t, utils.CodeAlreadyRated, utils.ErrorCode(err))

	// The second attempt left the reputation untouched.
	w, err := env.workers.GetByID("worker-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, w.Rating)
	assert.Equal(t, 1, w.TotalRatings)
}

func TestRateRetriesReputationConflict(t *testing.T) {
	env := newTestEnv(t)
	b := env.completedBooking(t)

	// The first attempt loses the reputation race and rolls back; the retry
	// lands cleanly.
	env.bookings.reputationConflictOnce = true

	rated, err := env.svc.Rate(b.ID, env.client, RateInput{Score: 5})
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)

	w, err := env.workers.GetByID("worker-1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, w.Rating)
	assert.Equal(t, 1, w.TotalRatings)
}

func TestRateConcurrentRatersExactlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	b := env.completedBooking(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Rate(b.ID, env.client, RateInput{Score: 4})
		}(i)
	}
	wg.Wait()

	var successes, alreadyRated int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case utils.ErrorCode(err) == utils.CodeAlreadyRated:
			alreadyRated++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, alreadyRated)

	// The reputation reflects exactly one rating.
	w, err := env.workers.GetByID("worker-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, w.Rating)
	assert.Equal(t, 1, w.TotalRatings)
}
