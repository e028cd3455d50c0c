package resource_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalms/admin-console/internal/model"
	"github.com/hospitalms/admin-console/internal/resource"
	apperrors "github.com/hospitalms/admin-console/pkg/errors"
	"github.com/hospitalms/admin-console/pkg/logger"
)

// fakeClient is an in-test backend with controllable failures and an
// optional block point to hold a write in flight.
type fakeClient struct {
	mu      sync.Mutex
	records []model.Outpatient

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	// stampID, when set, replaces the draft's id on create the way a
	// backend with server-assigned ids would.
	stampID string

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	blockCreate chan struct{}
}

func (f *fakeClient) List(ctx context.Context) ([]model.Outpatient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Outpatient, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeClient) Create(ctx context.Context, draft model.Outpatient) (model.Outpatient, error) {
	f.mu.Lock()
	block := f.blockCreate
	f.createCalls++
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.Outpatient{}, f.createErr
	}
	if f.stampID != "" {
		draft.OutpatientID = f.stampID
	}
	f.records = append(f.records, draft)
	return draft, nil
}

func (f *fakeClient) Update(ctx context.Context, id string, draft model.Outpatient) (model.Outpatient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.updateErr != nil {
		return model.Outpatient{}, f.updateErr
	}
	for i, rec := range f.records {
		if rec.OutpatientID == id {
			f.records[i] = draft
			return draft, nil
		}
	}
	return model.Outpatient{}, apperrors.NewNotFound("outpatient", id)
}

func (f *fakeClient) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, rec := range f.records {
		if rec.OutpatientID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFound("outpatient", id)
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(resource, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *recordingNotifier) Failure(resource, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, message)
}

func quietLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{
		Level:  logger.FatalLevel,
		Output: io.Discard,
	})
}

func newController(fc *fakeClient, notifier resource.Notifier) *resource.Controller[model.Outpatient] {
	return resource.NewController(model.OutpatientSchema(), fc, resource.ControllerConfig{
		PageSize: 5,
		Notifier: notifier,
		Logger:   quietLogger(),
	})
}

func confirmed() bool { return true }

func TestRefreshReplacesCollection(t *testing.T) {
	fc := &fakeClient{records: []model.Outpatient{
		outpatient("OP-1", "John", "john@example.com", model.StatusActive),
	}}
	ctrl := newController(fc, nil)

	require.NoError(t, ctrl.Refresh(context.Background()))
	assert.True(t, ctrl.Loaded())
	assert.Len(t, ctrl.Collection(), 1)
}

func TestRefreshFailureKeepsPriorCollection(t *testing.T) {
	fc := &fakeClient{records: []model.Outpatient{
		outpatient("OP-1", "John", "john@example.com", model.StatusActive),
	}}
	notifier := &recordingNotifier{}
	ctrl := newController(fc, notifier)
	require.NoError(t, ctrl.Refresh(context.Background()))

	fc.listErr = apperrors.NewTransport("outpatients list", nil)
	err := ctrl.Refresh(context.Background())

	assert.Error(t, err)
	assert.Len(t, ctrl.Collection(), 1, "prior collection must survive a failed refresh")
	assert.NotEmpty(t, notifier.failures)
}

func TestCreateRefreshesWithoutDuplicates(t *testing.T) {
	fc := &fakeClient{}
	ctrl := newController(fc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	draft := outpatient("OP-9", "New Patient", "new@example.com", model.StatusActive)
	created, err := ctrl.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, draft, created)

	matches := 0
	for _, rec := range ctrl.Collection() {
		if rec.OutpatientID == "OP-9" {
			matches++
			assert.Equal(t, draft, rec)
		}
	}
	assert.Equal(t, 1, matches)
	assert.Equal(t, 2, fc.listCalls, "create must be followed by a re-fetch")
}

func TestCreateValidationFailureSkipsBackend(t *testing.T) {
	fc := &fakeClient{}
	notifier := &recordingNotifier{}
	ctrl := newController(fc, notifier)

	_, err := ctrl.Create(context.Background(), model.Outpatient{Name: "No ID"})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
	assert.Zero(t, fc.createCalls, "invalid drafts must never reach the backend")
	assert.NotEmpty(t, notifier.failures)
}

func TestCreateTransportFailureLeavesCollectionUntouched(t *testing.T) {
	fc := &fakeClient{records: []model.Outpatient{
		outpatient("OP-1", "John", "john@example.com", model.StatusActive),
	}}
	ctrl := newController(fc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	fc.createErr = apperrors.NewTransport("outpatients create", nil)
	_, err := ctrl.Create(context.Background(), outpatient("OP-2", "Jane", "jane@example.com", model.StatusActive))

	assert.Error(t, err)
	assert.Len(t, ctrl.Collection(), 1)
}

func TestUpdateRejectsMismatchedID(t *testing.T) {
	ctrl := newController(&fakeClient{}, nil)

	_, err := ctrl.Update(context.Background(), "OP-1",
		outpatient("OP-2", "Jane", "jane@example.com", model.StatusActive))

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
}

func TestRemoveRequiresConfirmation(t *testing.T) {
	fc := &fakeClient{records: []model.Outpatient{
		outpatient("OP-1", "John", "john@example.com", model.StatusActive),
	}}
	ctrl := newController(fc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	err := ctrl.Remove(context.Background(), "OP-1", func() bool { return false })
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotConfirmed, apperrors.CodeOf(err))
	assert.Zero(t, fc.deleteCalls)

	err = ctrl.Remove(context.Background(), "OP-1", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotConfirmed, apperrors.CodeOf(err))
}

func TestRemoveDeletesAndRefreshes(t *testing.T) {
	fc := &fakeClient{records: []model.Outpatient{
		outpatient("OP-1", "John", "john@example.com", model.StatusActive),
		outpatient("OP-2", "Jane", "jane@example.com", model.StatusActive),
	}}
	ctrl := newController(fc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	require.NoError(t, ctrl.Remove(context.Background(), "OP-1", confirmed))

	for _, rec := range ctrl.Collection() {
		assert.NotEqual(t, "OP-1", rec.OutpatientID)
	}
	assert.Len(t, ctrl.Collection(), 1)
}

func TestToggleStatusTwiceRestoresOriginal(t *testing.T) {
	fc := &fakeClient{records: []model.Outpatient{
		outpatient("OP-1", "John", "john@example.com", model.StatusActive),
	}}
	ctrl := newController(fc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	require.NoError(t, ctrl.ToggleStatus(context.Background(), "OP-1"))
	rec, ok := ctrl.Find("OP-1")
	require.True(t, ok)
	assert.Equal(t, model.StatusInactive, rec.Status)

	require.NoError(t, ctrl.ToggleStatus(context.Background(), "OP-1"))
	rec, ok = ctrl.Find("OP-1")
	require.True(t, ok)
	assert.Equal(t, model.StatusActive, rec.Status)
}

func TestToggleStatusSendsFullRecord(t *testing.T) {
	fc := &fakeClient{records: []model.Outpatient{
		outpatient("OP-1", "John", "john@example.com", model.StatusActive),
	}}
	ctrl := newController(fc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	require.NoError(t, ctrl.ToggleStatus(context.Background(), "OP-1"))

	// The backend received the complete record, not a partial patch.
	assert.Equal(t, "John", fc.records[0].Name)
	assert.Equal(t, "john@example.com", fc.records[0].Email)
	assert.Equal(t, model.StatusInactive, fc.records[0].Status)
}

func TestToggleStatusFailureIsNotAppliedLocally(t *testing.T) {
	fc := &fakeClient{records: []model.Outpatient{
		outpatient("OP-1", "John", "john@example.com", model.StatusActive),
	}}
	ctrl := newController(fc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	fc.updateErr = apperrors.NewTransport("outpatients update", nil)
	err := ctrl.ToggleStatus(context.Background(), "OP-1")

	assert.Error(t, err)
	rec, ok := ctrl.Find("OP-1")
	require.True(t, ok)
	assert.Equal(t, model.StatusActive, rec.Status, "no optimistic flip before the write confirms")
}

func TestToggleStatusUnknownRecord(t *testing.T) {
	ctrl := newController(&fakeClient{}, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	err := ctrl.ToggleStatus(context.Background(), "OP-404")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}

func TestSecondWriteRejectedWhileInFlight(t *testing.T) {
	fc := &fakeClient{blockCreate: make(chan struct{})}
	ctrl := newController(fc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	first := make(chan error, 1)
	go func() {
		_, err := ctrl.Create(context.Background(),
			outpatient("OP-1", "John", "john@example.com", model.StatusActive))
		first <- err
	}()

	// Wait until the first write is inside the client call.
	for {
		fc.mu.Lock()
		started := fc.createCalls > 0
		fc.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	_, err := ctrl.Create(context.Background(),
		outpatient("OP-2", "Jane", "jane@example.com", model.StatusActive))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrWriteInFlight, apperrors.CodeOf(err))

	close(fc.blockCreate)
	require.NoError(t, <-first)

	// With the first write resolved, the next one goes through.
	_, err = ctrl.Create(context.Background(),
		outpatient("OP-2", "Jane", "jane@example.com", model.StatusActive))
	require.NoError(t, err)
}

func TestCriteriaChangeResetsPage(t *testing.T) {
	var records []model.Outpatient
	for i := 0; i < 7; i++ {
		records = append(records, outpatient(
			string(rune('A'+i)), "John", "john@example.com", model.StatusActive))
	}
	fc := &fakeClient{records: records}
	ctrl := newController(fc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	ctrl.SetPage(2)
	assert.Equal(t, 2, ctrl.Page())

	ctrl.SetQuery("john doe is nowhere")
	assert.Equal(t, 1, ctrl.Page(), "a criteria change must land back on page 1")

	ctrl.SetQuery("")
	ctrl.SetPage(2)
	ctrl.SetCategory(model.StatusInactive)
	assert.Equal(t, 1, ctrl.Page())
}

func TestSetPageClampsToVisibleSubset(t *testing.T) {
	var records []model.Outpatient
	for i := 0; i < 7; i++ {
		records = append(records, outpatient(
			string(rune('A'+i)), "John", "john@example.com", model.StatusActive))
	}
	fc := &fakeClient{records: records}
	ctrl := newController(fc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	ctrl.SetPage(99)
	assert.Equal(t, 2, ctrl.Page())
	assert.Len(t, ctrl.Window(), 2)
	assert.Equal(t, 2, ctrl.PageCount())
}

func TestNotifierReceivesSuccessMessages(t *testing.T) {
	fc := &fakeClient{}
	notifier := &recordingNotifier{}
	ctrl := newController(fc, notifier)
	require.NoError(t, ctrl.Refresh(context.Background()))

	_, err := ctrl.Create(context.Background(),
		outpatient("OP-1", "John", "john@example.com", model.StatusActive))
	require.NoError(t, err)

	assert.Contains(t, notifier.successes, "outpatient added")
}

func TestCreateReturnsBackendAssignedFields(t *testing.T) {
	fc := &fakeClient{stampID: "OP-GEN"}
	ctrl := newController(fc, nil)
	require.NoError(t, ctrl.Refresh(context.Background()))

	created, err := ctrl.Create(context.Background(),
		outpatient("OP-TMP", "John", "john@example.com", model.StatusActive))
	require.NoError(t, err)

	assert.Equal(t, "OP-GEN", created.OutpatientID,
		"the caller sees the record as the backend persisted it")
	_, ok := ctrl.Find("OP-GEN")
	assert.True(t, ok)
}
