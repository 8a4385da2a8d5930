package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"safeher/internal/routine/deviation"
	"safeher/internal/routine/models"
	"safeher/internal/routine/service/mocks"
	id "safeher/pkg/domain"
	dErrors "safeher/pkg/domain-errors"
	"safeher/pkg/platform/sentinel"
	"safeher/pkg/requestcontext"
)

// =============================================================================
// Routine Service Test Suite
// =============================================================================
// Justification for unit tests: the service is the only place where the
// schedule resolver, the deviation evaluator and the store meet. Tests verify
// composition, the bounded store lookup and error mapping.

const bangalore = "12.9716,77.5946"

type RoutineServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockStore *mocks.MockStore
	service   *Service
	username  id.Username
}

func TestRoutineServiceSuite(t *testing.T) {
	suite.Run(t, new(RoutineServiceSuite))
}

func (s *RoutineServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var err error
	s.service, err = New(s.mockStore, WithLogger(logger))
	s.Require().NoError(err)
	s.username, err = id.ParseUsername("priya_s")
	s.Require().NoError(err)
}

func (s *RoutineServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func entry(routineID int64, from, to models.TimeOfDay, location string) models.Routine {
	return models.Routine{
		ID:       id.RoutineID(routineID),
		Username: "priya_s",
		Title:    "entry",
		Window:   models.Window{From: from, To: to},
		Location: location,
	}
}

func at(h, m int) time.Time {
	return time.Date(2025, time.March, 10, h, m, 0, 0, time.UTC)
}

// =============================================================================
// Constructor Tests (Invariant Enforcement)
// =============================================================================

func (s *RoutineServiceSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := New(nil)
		s.Error(err)
		s.Contains(err.Error(), "routine store is required")
	})

	s.Run("defaults applied", func() {
		svc, err := New(s.mockStore)
		s.NoError(err)
		s.Equal(DefaultStoreTimeout, svc.storeTimeout)
		s.Equal(deviation.DefaultThresholdKm, svc.evaluator.ThresholdKm())
		s.NotNil(svc.logger)
	})

	s.Run("non-positive store timeout is ignored", func() {
		svc, err := New(s.mockStore, WithStoreTimeout(0))
		s.NoError(err)
		s.Equal(DefaultStoreTimeout, svc.storeTimeout)
	})

	s.Run("options applied", func() {
		loc := time.FixedZone("IST", 5*3600+1800)
		eval := deviation.New(deviation.WithThresholdKm(2))
		svc, err := New(s.mockStore,
			WithStoreTimeout(time.Second),
			WithLocation(loc),
			WithEvaluator(eval),
		)
		s.NoError(err)
		s.Equal(time.Second, svc.storeTimeout)
		s.Equal(loc, svc.location)
		s.Equal(2.0, svc.evaluator.ThresholdKm())
	})
}

// =============================================================================
// CheckNow Tests
// =============================================================================

func (s *RoutineServiceSuite) TestCheckNow() {
	ctx := context.Background()

	s.Run("on schedule at the expected place", func() {
		s.mockStore.EXPECT().ListByUser(gomock.Any(), s.username).Return([]models.Routine{
			entry(1, models.MustTimeOfDay(9, 0, 0), models.MustTimeOfDay(17, 0, 0), bangalore),
		}, nil)

		result, err := s.service.CheckNow(ctx, s.username, 12.9716, 77.5946, at(10, 0))
		s.Require().NoError(err)
		s.Equal(models.StatusOnSchedule, result.Status)
		s.Require().NotNil(result.DistanceKm)
		s.Equal(0.0, *result.DistanceKm)
		s.Equal(id.RoutineID(1), result.Routine.ID)
		s.Equal(at(10, 0), result.CheckedAt)
	})

	s.Run("deviating far from the expected place", func() {
		s.mockStore.EXPECT().ListByUser(gomock.Any(), s.username).Return([]models.Routine{
			entry(1, models.MustTimeOfDay(9, 0, 0), models.MustTimeOfDay(17, 0, 0), bangalore),
		}, nil)

		result, err := s.service.CheckNow(ctx, s.username, 12.2958, 76.6394, at(10, 0))
		s.Require().NoError(err)
		s.Equal(models.StatusDeviating, result.Status)
		s.Require().NotNil(result.DistanceKm)
		s.InDelta(73.33, *result.DistanceKm, 1)
		s.Require().NotNil(result.Expected)
		s.Equal(bangalore, result.Expected.Location)
	})

	s.Run("midnight-wrapping entry is active after midnight", func() {
		s.mockStore.EXPECT().ListByUser(gomock.Any(), s.username).Return([]models.Routine{
			entry(7, models.MustTimeOfDay(23, 0, 0), models.MustTimeOfDay(6, 0, 0), bangalore),
		}, nil)

		result, err := s.service.CheckNow(ctx, s.username, 12.9716, 77.5946, at(2, 0))
		s.Require().NoError(err)
		s.Equal(models.StatusOnSchedule, result.Status)
		s.Equal(id.RoutineID(7), result.Routine.ID)
	})

	s.Run("place name location is on schedule without distance", func() {
		s.mockStore.EXPECT().ListByUser(gomock.Any(), s.username).Return([]models.Routine{
			entry(1, models.MustTimeOfDay(9, 0, 0), models.MustTimeOfDay(17, 0, 0), "Office"),
		}, nil)

		result, err := s.service.CheckNow(ctx, s.username, 12.2958, 76.6394, at(10, 0))
		s.Require().NoError(err)
		s.Equal(models.StatusOnSchedule, result.Status)
		s.Nil(result.DistanceKm)
	})

	s.Run("overlapping entries resolve to the earliest start", func() {
		s.mockStore.EXPECT().ListByUser(gomock.Any(), s.username).Return([]models.Routine{
			entry(5, models.MustTimeOfDay(9, 0, 0), models.MustTimeOfDay(12, 0, 0), bangalore),
			entry(3, models.MustTimeOfDay(8, 0, 0), models.MustTimeOfDay(10, 0, 0), bangalore),
		}, nil)

		result, err := s.service.CheckNow(ctx, s.username, 12.9716, 77.5946, at(9, 30))
		s.Require().NoError(err)
		s.Equal(id.RoutineID(3), result.Routine.ID)
	})

	s.Run("no active entry is not applicable", func() {
		s.mockStore.EXPECT().ListByUser(gomock.Any(), s.username).Return([]models.Routine{
			entry(1, models.MustTimeOfDay(9, 0, 0), models.MustTimeOfDay(17, 0, 0), bangalore),
		}, nil)

		result, err := s.service.CheckNow(ctx, s.username, 12.9716, 77.5946, at(20, 0))
		s.Require().NoError(err)
		s.Equal(models.StatusNotApplicable, result.Status)
		s.Nil(result.Routine)
	})

	s.Run("user without routines is not applicable", func() {
		s.mockStore.EXPECT().ListByUser(gomock.Any(), s.username).Return([]models.Routine{}, nil)

		result, err := s.service.CheckNow(ctx, s.username, 12.9716, 77.5946, at(10, 0))
		s.Require().NoError(err)
		s.Equal(models.StatusNotApplicable, result.Status)
	})

	s.Run("invalid coordinates rejected before store lookup", func() {
		_, err := s.service.CheckNow(ctx, s.username, 91, 77.5946, at(10, 0))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidCoordinates))
	})

	s.Run("store error is storage unavailable", func() {
		s.mockStore.EXPECT().ListByUser(gomock.Any(), s.username).Return(nil, errors.New("connection refused"))

		result, err := s.service.CheckNow(ctx, s.username, 12.9716, 77.5946, at(10, 0))
		s.Nil(result)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeStorageUnavailable))
		s.ErrorIs(err, sentinel.ErrUnavailable)
	})

	s.Run("slow store times out as storage unavailable", func() {
		svc, err := New(s.mockStore, WithStoreTimeout(20*time.Millisecond))
		s.Require().NoError(err)
		s.mockStore.EXPECT().ListByUser(gomock.Any(), s.username).DoAndReturn(
			func(ctx context.Context, _ id.Username) ([]models.Routine, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			})

		start := time.Now()
		_, err = svc.CheckNow(ctx, s.username, 12.9716, 77.5946, at(10, 0))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeStorageUnavailable))
		s.ErrorIs(err, context.DeadlineExceeded)
		s.Less(time.Since(start), time.Second)
	})

	s.Run("time of day taken in the configured zone", func() {
		ist := time.FixedZone("IST", 5*3600+1800)
		svc, err := New(s.mockStore, WithLocation(ist))
		s.Require().NoError(err)
		s.mockStore.EXPECT().ListByUser(gomock.Any(), s.username).Return([]models.Routine{
			entry(1, models.MustTimeOfDay(9, 0, 0), models.MustTimeOfDay(17, 0, 0), bangalore),
		}, nil)

		// 04:30 UTC is 10:00 IST
		result, err := svc.CheckNow(ctx, s.username, 12.9716, 77.5946, at(4, 30))
		s.Require().NoError(err)
		s.Equal(models.StatusOnSchedule, result.Status)
	})
}

// =============================================================================
// CRUD Tests
// =============================================================================

func (s *RoutineServiceSuite) TestCreate() {
	now := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	newRequest := func() *models.CreateRoutineRequest {
		req := &models.CreateRoutineRequest{
			Username: "priya_s",
			Title:    "Night shift",
			TimeFrom: "22:00",
			TimeTo:   "06:00",
			Location: bangalore,
			Days:     "Mon,Tue",
		}
		req.Normalize()
		s.Require().NoError(req.Validate())
		return req
	}

	s.Run("stores routine with parsed fields", func() {
		s.mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r *models.Routine) error {
				r.ID = 42
				return nil
			})

		routine, err := s.service.Create(ctx, newRequest())
		s.Require().NoError(err)
		s.Equal(id.RoutineID(42), routine.ID)
		s.Equal(s.username, routine.Username)
		s.True(routine.Window.WrapsMidnight())
		s.Equal(id.Days{id.Monday, id.Tuesday}, routine.Days)
		s.Equal(now, routine.CreatedAt)
	})

	s.Run("store failure is internal error", func() {
		s.mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := s.service.Create(ctx, newRequest())
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("nil request rejected", func() {
		_, err := s.service.Create(ctx, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *RoutineServiceSuite) TestList() {
	ctx := context.Background()

	s.Run("orders by window start then id", func() {
		s.mockStore.EXPECT().ListByUser(gomock.Any(), s.username).Return([]models.Routine{
			entry(9, models.MustTimeOfDay(18, 0, 0), models.MustTimeOfDay(19, 0, 0), ""),
			entry(5, models.MustTimeOfDay(8, 0, 0), models.MustTimeOfDay(9, 0, 0), ""),
			entry(2, models.MustTimeOfDay(8, 0, 0), models.MustTimeOfDay(10, 0, 0), ""),
		}, nil)

		routines, err := s.service.List(ctx, s.username)
		s.Require().NoError(err)
		s.Require().Len(routines, 3)
		s.Equal(id.RoutineID(2), routines[0].ID)
		s.Equal(id.RoutineID(5), routines[1].ID)
		s.Equal(id.RoutineID(9), routines[2].ID)
	})

	s.Run("store failure is storage unavailable", func() {
		s.mockStore.EXPECT().ListByUser(gomock.Any(), s.username).Return(nil, errors.New("boom"))

		_, err := s.service.List(ctx, s.username)
		s.True(dErrors.HasCode(err, dErrors.CodeStorageUnavailable))
	})
}

func (s *RoutineServiceSuite) TestDelete() {
	ctx := context.Background()

	s.Run("deletes owned routine", func() {
		s.mockStore.EXPECT().Delete(gomock.Any(), s.username, id.RoutineID(4)).Return(nil)
		s.NoError(s.service.Delete(ctx, s.username, 4))
	})

	s.Run("missing routine is not found", func() {
		s.mockStore.EXPECT().Delete(gomock.Any(), s.username, id.RoutineID(4)).Return(sentinel.ErrNotFound)
		err := s.service.Delete(ctx, s.username, 4)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("other failures are internal", func() {
		s.mockStore.EXPECT().Delete(gomock.Any(), s.username, id.RoutineID(4)).Return(errors.New("boom"))
		err := s.service.Delete(ctx, s.username, 4)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
