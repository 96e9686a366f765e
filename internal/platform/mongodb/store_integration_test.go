package mongodb

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/carecamp/carecamp-api/internal/config"
	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/store"
	"github.com/carecamp/carecamp-api/internal/testdb"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StoreTestSuite struct {
	suite.Suite
	client *Client
	dbName string
}

func (s *StoreTestSuite) SetupSuite() {
	url := testdb.MongoURL()
	s.dbName = "carecamp_test"

	client, err := Connect(context.Background(), config.DatabaseConfig{
		Driver:           config.DriverMongo,
		URL:              url,
		Name:             s.dbName,
		OperationTimeout: 5 * time.Second,
	}, slog.Default())
	s.Require().NoError(err)
	s.client = client
}

func (s *StoreTestSuite) SetupTest() {
	s.Require().NoError(s.client.db.Drop(context.Background()))
	s.Require().NoError(s.client.EnsureIndexes(context.Background()))
}

func (s *StoreTestSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.db.Drop(context.Background())
		_ = s.client.Close(context.Background())
	}
}

func (s *StoreTestSuite) createCamp(name string, fees float64, location string) *domain.Camp {
	camp, err := domain.NewCamp(domain.Camp{CampName: name, CampFees: fees, Location: location})
	s.Require().NoError(err)
	s.Require().NoError(s.client.CampStore().Create(context.Background(), camp))
	return camp
}

func (s *StoreTestSuite) TestUserEmailIsUnique() {
	ctx := context.Background()
	users := s.client.UserStore()

	first, err := domain.NewUser("dup@example.com", "First", "")
	s.Require().NoError(err)
	s.NoError(users.Create(ctx, first))

	second, err := domain.NewUser("dup@example.com", "Second", "")
	s.Require().NoError(err)
	s.ErrorIs(users.Create(ctx, second), store.ErrEmailExists)

	got, err := users.GetByEmail(ctx, "DUP@example.com")
	s.Require().NoError(err)
	s.Equal(first.ID, got.ID)
	s.Equal(domain.RoleParticipant, got.Role)

	_, err = users.GetByEmail(ctx, "nobody@example.com")
	s.ErrorIs(err, store.ErrUserNotFound)
}

func (s *StoreTestSuite) TestUpdateProfile() {
	ctx := context.Background()
	users := s.client.UserStore()

	user, err := domain.NewUser("p@example.com", "P", "")
	s.Require().NoError(err)
	s.Require().NoError(users.Create(ctx, user))

	phone := "+8801700000000"
	res, err := users.UpdateProfile(ctx, "p@example.com", domain.ProfileUpdate{Phone: &phone})
	s.Require().NoError(err)
	s.Equal(int64(1), res.MatchedCount)
	s.Equal(int64(1), res.ModifiedCount)

	_, err = users.UpdateProfile(ctx, "p@example.com", domain.ProfileUpdate{
		Extra: domain.Fields{"bloodGroup": "O+"},
	})
	s.Require().NoError(err)
	got, err := users.GetByEmail(ctx, "p@example.com")
	s.Require().NoError(err)
	s.Equal(domain.Fields{"bloodGroup": "O+"}, got.Extra)
	s.Equal(phone, got.Phone)

	_, err = users.UpdateProfile(ctx, "ghost@example.com", domain.ProfileUpdate{Phone: &phone})
	s.ErrorIs(err, store.ErrUserNotFound)
}

func (s *StoreTestSuite) TestSearchSortAndPaginate() {
	ctx := context.Background()
	s.createCamp("Eye Camp", 50, "Dhaka")
	s.createCamp("Dental Camp", 10, "Sylhet")
	s.createCamp("Heart Camp", 30, "Dhaka")

	page, err := s.client.CampStore().Search(ctx, store.CampQuery{Sort: store.SortFeesLow, Page: 1, Limit: 2})
	s.Require().NoError(err)
	s.Equal(int64(3), page.Total)
	s.Require().Len(page.Result, 2)
	s.Equal(10.0, page.Result[0].CampFees)
	s.Equal(30.0, page.Result[1].CampFees)

	page, err = s.client.CampStore().Search(ctx, store.CampQuery{Search: "dhaka", Page: 1, Limit: 9})
	s.Require().NoError(err)
	s.Equal(int64(2), page.Total)

	page, err = s.client.CampStore().Search(ctx, store.CampQuery{Search: "", Page: 2, Limit: 2})
	s.Require().NoError(err)
	s.Equal(int64(3), page.Total)
	s.Len(page.Result, 1)

	page, err = s.client.CampStore().Search(ctx, store.CampQuery{Search: "zzz", Page: 1, Limit: 9})
	s.Require().NoError(err)
	s.Equal(int64(0), page.Total)
	s.NotNil(page.Result)
	s.Empty(page.Result)
}

func (s *StoreTestSuite) TestIncrementParticipants() {
	ctx := context.Background()
	camp := s.createCamp("Eye Camp", 50, "Dhaka")
	camps := s.client.CampStore()

	for i := 0; i < 2; i++ {
		_, err := camps.IncrementParticipants(ctx, camp.ID)
		s.Require().NoError(err)
	}

	got, err := camps.GetByID(ctx, camp.ID)
	s.Require().NoError(err)
	s.Equal(2, got.ParticipantCount)

	popular, err := camps.Popular(ctx, store.PopularCampLimit)
	s.Require().NoError(err)
	s.Require().NotEmpty(popular)
	s.Equal(camp.ID, popular[0].ID)

	_, err = camps.IncrementParticipants(ctx, primitive.NewObjectID())
	s.ErrorIs(err, store.ErrCampNotFound)
}

func (s *StoreTestSuite) TestConcurrentConfirmSucceedsOnce() {
	ctx := context.Background()
	regs := s.client.RegistrationStore()

	reg, err := domain.NewRegistration(domain.Registration{
		CampID:           primitive.NewObjectID().Hex(),
		CampName:         "Eye Camp",
		ParticipantName:  "Nadia",
		ParticipantEmail: "nadia@example.com",
	})
	s.Require().NoError(err)
	s.Require().NoError(regs.Create(ctx, reg))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		misses    int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := regs.Confirm(ctx, reg.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if store.IsNotFoundError(err) {
				misses++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(1, misses)
}

func (s *StoreTestSuite) TestMarkPaidAndDelete() {
	ctx := context.Background()
	regs := s.client.RegistrationStore()
	campID := primitive.NewObjectID().Hex()

	reg, err := domain.NewRegistration(domain.Registration{
		CampID:           campID,
		ParticipantName:  "Nadia",
		ParticipantEmail: "nadia@example.com",
	})
	s.Require().NoError(err)
	s.Require().NoError(regs.Create(ctx, reg))

	_, err = regs.MarkPaid(ctx, campID, "nadia@example.com", "pi_123")
	s.Require().NoError(err)

	mine, err := regs.ListByUser(ctx, "nadia@example.com")
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal(domain.PaymentPaid, mine[0].PaymentStatus)
	s.Equal("pi_123", mine[0].TransactionID)

	_, err = regs.Delete(ctx, reg.ID)
	s.Require().NoError(err)
	_, err = regs.Delete(ctx, reg.ID)
	s.ErrorIs(err, store.ErrRegistrationNotFound)
}

func (s *StoreTestSuite) TestFeedbackNewestFirst() {
	ctx := context.Background()
	fbs := s.client.FeedbackStore()
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		fb, err := domain.NewFeedback(domain.Feedback{Rating: i + 1, Comment: "ok"}, base.Add(time.Duration(i)*time.Hour))
		s.Require().NoError(err)
		s.Require().NoError(fbs.Create(ctx, fb))
	}

	items, err := fbs.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 3)
	s.Equal(3, items[0].Rating)
	s.Equal(1, items[2].Rating)
}

func TestStoreTestSuite(t *testing.T) {
	testdb.SkipUnlessMongo(t)
	suite.Run(t, new(StoreTestSuite))
}
