package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fixflow/fixflow/internal/db/models"
	"github.com/fixflow/fixflow/internal/db/repos"
	"github.com/fixflow/fixflow/internal/events"
)

// fakeNotifier records notification calls and can be told to fail
type fakeNotifier struct {
	mu           sync.Mutex
	failEmails   bool
	emails       []string
	assignments  []uint
	reassignment [][2]uint
}

func (n *fakeNotifier) NotifyAssignment(_ context.Context, _ *models.Job, userID uint) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.assignments = append(n.assignments, userID)
	return nil
}

func (n *fakeNotifier) NotifyReassignment(_ context.Context, _ *models.Job, fromUserID, toUserID uint) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reassignment = append(n.reassignment, [2]uint{fromUserID, toUserID})
	return nil
}

func (n *fakeNotifier) SendReadyForPickupEmail(_ context.Context, customerEmail string, _ *models.Job) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, customerEmail)
	if n.failEmails {
		return errors.New("smtp unreachable")
	}
	return nil
}

func (n *fakeNotifier) emailCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.emails)
}

func (n *fakeNotifier) assignmentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.assignments)
}

func (n *fakeNotifier) reassignmentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.reassignment)
}

// ServiceTestSuite wires the full lifecycle stack over an in-memory
// database with an owned event bus and fake notifier
type ServiceTestSuite struct {
	suite.Suite
	db           *gorm.DB
	ctx          context.Context
	cancel       context.CancelFunc
	jobRepo      *repos.JobRepository
	activityRepo *repos.ActivityLogRepository
	eventRepo    *repos.StatusChangeEventRepository
	customerRepo *repos.CustomerRepository
	userRepo     *repos.UserRepository
	callbackRepo *repos.CallbackRepository
	bus          *events.Bus
	notifier     *fakeNotifier
	jobSvc       *JobService
	analyticsSvc *AnalyticsService
}

func (s *ServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(0)"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	err = db.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Customer{},
		&models.Job{},
		&models.ActivityLog{},
		&models.StatusChangeEvent{},
		&models.Callback{},
	)
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	s.jobRepo = repos.NewJobRepository(db)
	s.activityRepo = repos.NewActivityLogRepository(db)
	s.eventRepo = repos.NewStatusChangeEventRepository(db)
	s.customerRepo = repos.NewCustomerRepository(db)
	s.userRepo = repos.NewUserRepository(db)
	s.callbackRepo = repos.NewCallbackRepository(db)

	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.bus = events.NewBus()
	s.notifier = &fakeNotifier{}
	RegisterNotificationHandlers(s.bus, s.notifier, s.jobRepo, s.customerRepo)
	s.bus.Start(s.ctx)

	s.jobSvc = NewJobService(s.jobRepo, s.activityRepo, s.eventRepo, s.customerRepo, s.bus)
	s.analyticsSvc = NewAnalyticsService(s.jobRepo, s.callbackRepo, s.customerRepo, s.userRepo)
}

func (s *ServiceTestSuite) TearDownTest() {
	s.cancel()
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// Helper methods for creating test data

func (s *ServiceTestSuite) createCustomer(businessID uint, email string) *models.Customer {
	customer := &models.Customer{
		BusinessID: businessID,
		Name:       "Dana Fields",
		Email:      email,
		Phone:      "555-0134",
	}
	s.Require().NoError(s.customerRepo.Create(s.ctx, customer))
	return customer
}

func (s *ServiceTestSuite) createUser(businessID uint, name string) *models.User {
	user := &models.User{BusinessID: businessID, Name: name, Role: "technician"}
	s.Require().NoError(s.userRepo.Create(s.ctx, user))
	return user
}

func (s *ServiceTestSuite) createJob(businessID uint) *models.Job {
	customer := s.createCustomer(businessID, "dana@example.com")
	job, err := s.jobSvc.Create(s.ctx, businessID, CreateJobRequest{
		CustomerID: customer.ID,
		Equipment:  "Espresso machine",
		Issue:      "No pressure on group head",
	})
	s.Require().NoError(err)
	return job
}

// waitFor polls until the condition holds; async side effects run on bus
// goroutines
func (s *ServiceTestSuite) waitFor(cond func() bool, msg string) {
	s.Require().Eventually(cond, 2*time.Second, 10*time.Millisecond, msg)
}

// noEffectWithin asserts a side effect did not happen in a grace window
func (s *ServiceTestSuite) noEffectWithin(cond func() bool, msg string) {
	time.Sleep(100 * time.Millisecond)
	s.False(cond(), msg)
}
