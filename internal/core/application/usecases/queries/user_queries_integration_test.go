package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/userrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UserQueriesIntegrationTestSuite exercises authentication and profile reads
// against a real PostgreSQL container.
type UserQueriesIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	userRepo  *userrepo.GormUserRepository
}

func (suite *UserQueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&userrepo.UserDTO{}))
	suite.userRepo = userrepo.NewGormUserRepository(db, noopTracker{})
}

func (suite *UserQueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE users").Error)
}

func (suite *UserQueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UserQueriesIntegrationTestSuite) seedUser(username, password string, role user.Role) *user.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	suite.Require().NoError(err)

	u, err := user.NewUser(kernel.NewUUID(), username, string(hash), role)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.userRepo.Add(context.Background(), u))
	return u
}

func (suite *UserQueriesIntegrationTestSuite) TestAuthenticate_Success() {
	seeded := suite.seedUser("alice", "s3cret-pw", user.Dispatcher)

	handler := queries.NewAuthenticateQueryHandler(suite.db)
	query, err := queries.NewAuthenticateQuery("alice", "s3cret-pw")
	suite.Require().NoError(err)

	identity, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.True(identity.UserID.IsEqual(seeded.ID()))
	suite.Equal("alice", identity.Username)
	suite.Equal(user.Dispatcher, identity.Role)
}

func (suite *UserQueriesIntegrationTestSuite) TestAuthenticate_WrongPassword() {
	suite.seedUser("bob", "right-password", user.Receiver)

	handler := queries.NewAuthenticateQueryHandler(suite.db)
	query, err := queries.NewAuthenticateQuery("bob", "wrong-password")
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, queries.ErrInvalidCredentials)
}

func (suite *UserQueriesIntegrationTestSuite) TestAuthenticate_UnknownUsername() {
	handler := queries.NewAuthenticateQueryHandler(suite.db)
	query, err := queries.NewAuthenticateQuery("nobody", "whatever-pw")
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, queries.ErrInvalidCredentials)
}

func (suite *UserQueriesIntegrationTestSuite) TestGetUser_Profile() {
	seeded := suite.seedUser("carol", "s3cret-pw", user.Receiver)

	handler := queries.NewGetUserQueryHandler(suite.db)
	query, err := queries.NewGetUserQuery(seeded.ID())
	suite.Require().NoError(err)

	profile, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.True(profile.ID.IsEqual(seeded.ID()))
	suite.Equal("carol", profile.Username)
	suite.Equal(user.Receiver, profile.Role)
	suite.False(profile.CreatedAt.IsZero())
}

func (suite *UserQueriesIntegrationTestSuite) TestGetUser_NotFound() {
	handler := queries.NewGetUserQueryHandler(suite.db)
	query, err := queries.NewGetUserQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestUserQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserQueriesIntegrationTestSuite))
}
