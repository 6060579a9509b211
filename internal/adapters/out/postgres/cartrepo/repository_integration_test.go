package cartrepo_test

import (
	"context"
	"testing"
	"time"

	"takeout/internal/adapters/out/postgres/cartrepo"
	"takeout/internal/adapters/out/postgres/pgtest"
	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
)

type CartRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *cartrepo.GormCartRepository
}

func TestCartRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(CartRepositoryIntegrationTestSuite))
}

func (suite *CartRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *CartRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate("cart_lines"))
	suite.repository = cartrepo.NewGormCartRepository(suite.pg.DB)
}

func (suite *CartRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *CartRepositoryIntegrationTestSuite) TestAddAndList() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repository.AddLines(ctx, []cart.Line{
		suite.line(42, "Noodles", 1, 0),
		suite.line(42, "Family Set", 0, 4),
		suite.line(7, "Soup", 2, 0),
	}))

	lines, err := suite.repository.ListByUser(ctx, 42)

	suite.Require().NoError(err)
	suite.Require().Len(lines, 2)
	suite.Equal("Noodles", lines[0].Name())
	suite.Equal(int64(1), lines[0].DishID())
	suite.Equal(int64(4), lines[1].SetmealID())
	suite.Equal("mild", lines[1].Flavor())
	suite.Equal("9.90", lines[1].UnitPrice().String())
	suite.Positive(lines[0].ID())
}

func (suite *CartRepositoryIntegrationTestSuite) TestAddLines_Empty() {
	suite.Require().NoError(suite.repository.AddLines(suite.T().Context(), nil))
}

func (suite *CartRepositoryIntegrationTestSuite) TestRemoveLines_OnlyOwnListedIDs() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repository.AddLines(ctx, []cart.Line{
		suite.line(42, "Noodles", 1, 0),
		suite.line(42, "Tea", 3, 0),
		suite.line(7, "Soup", 2, 0),
	}))
	mine, err := suite.repository.ListByUser(ctx, 42)
	suite.Require().NoError(err)
	theirs, err := suite.repository.ListByUser(ctx, 7)
	suite.Require().NoError(err)

	removed, err := suite.repository.RemoveLines(ctx, 42, []int64{mine[0].ID(), theirs[0].ID()})
	suite.Require().NoError(err)
	suite.Equal(int64(1), removed, "only own lines count")

	mine, err = suite.repository.ListByUser(ctx, 42)
	suite.Require().NoError(err)
	suite.Require().Len(mine, 1)
	suite.Equal("Tea", mine[0].Name())

	theirs, err = suite.repository.ListByUser(ctx, 7)
	suite.Require().NoError(err)
	suite.Len(theirs, 1, "lines of other users are untouched")
}

func (suite *CartRepositoryIntegrationTestSuite) TestRemoveLines_Empty() {
	removed, err := suite.repository.RemoveLines(suite.T().Context(), 42, nil)
	suite.Require().NoError(err)
	suite.Zero(removed)
}

func (suite *CartRepositoryIntegrationTestSuite) line(userID int64, name string, dishID, setmealID int64) cart.Line {
	price, err := kernel.ParseMoney("9.90")
	suite.Require().NoError(err)
	l, err := cart.NewLine(userID, name, "", dishID, setmealID, "mild", 1, price, time.Now())
	suite.Require().NoError(err)
	return l
}
