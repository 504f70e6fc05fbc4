package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fixflow/fixflow/internal/db/models"
	"github.com/fixflow/fixflow/internal/status"
)

// DBRepositoryTestSuite provides a base test suite for repository tests
type DBRepositoryTestSuite struct {
	suite.Suite
	db           *gorm.DB
	ctx          context.Context
	jobRepo      *JobRepository
	activityRepo *ActivityLogRepository
	eventRepo    *StatusChangeEventRepository
	customerRepo *CustomerRepository
	userRepo     *UserRepository
	callbackRepo *CallbackRepository
}

func (s *DBRepositoryTestSuite) SetupTest() {
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
	s.jobRepo = NewJobRepository(db)
	s.activityRepo = NewActivityLogRepository(db)
	s.eventRepo = NewStatusChangeEventRepository(db)
	s.customerRepo = NewCustomerRepository(db)
	s.userRepo = NewUserRepository(db)
	s.callbackRepo = NewCallbackRepository(db)
	s.ctx = context.Background()
}

func (s *DBRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// Helper methods for creating test data

func (s *DBRepositoryTestSuite) createTestCustomer(businessID uint) *models.Customer {
	customer := &models.Customer{
		BusinessID: businessID,
		Name:       "Dana Fields",
		Email:      "dana@example.com",
		Phone:      "555-0134",
	}
	s.Require().NoError(s.customerRepo.Create(s.ctx, customer))
	return customer
}

func (s *DBRepositoryTestSuite) createTestJob(businessID uint) *models.Job {
	customer := s.createTestCustomer(businessID)
	job := &models.Job{
		BusinessID: businessID,
		Code:       "JOB-0001",
		PublicID:   uuid.NewString(),
		CustomerID: customer.ID,
		Equipment:  "Espresso machine",
		Issue:      "No pressure on group head",
		Status:     status.WaitingAssessment,
		Version:    1,
		CreatedAt:  time.Now(),
	}
	s.Require().NoError(s.jobRepo.Create(s.ctx, job))
	return job
}
