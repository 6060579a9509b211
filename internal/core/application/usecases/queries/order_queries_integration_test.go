package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"takeout/internal/adapters/out/postgres/orderrepo"
	"takeout/internal/adapters/out/postgres/pgtest"
	"takeout/internal/core/application/usecases/queries"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type OrderQueriesIntegrationTestSuite struct {
	suite.Suite
	pg     *pgtest.Database
	repo   *orderrepo.GormOrderRepository
	seeded int
}

func TestOrderQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(OrderQueriesIntegrationTestSuite))
}

func (suite *OrderQueriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.repo = orderrepo.NewGormOrderRepository(pg.DB)
}

func (suite *OrderQueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.seeded = 0
}

func (suite *OrderQueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *OrderQueriesIntegrationTestSuite) TestHistory_PagesNewestFirstWithLines() {
	ctx := suite.T().Context()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := range 3 {
		suite.seed(42, "13800000000", base.Add(time.Duration(i)*time.Hour), order.PendingPayment)
	}
	suite.seed(7, "13900000000", base, order.PendingPayment)

	q, err := queries.NewGetOrderHistoryQuery(42, order.Unknown, 1, 2)
	suite.Require().NoError(err)
	page, err := queries.NewGetOrderHistoryQueryHandler(suite.pg.DB).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Equal(int64(3), page.Total)
	suite.Require().Len(page.Records, 2)
	suite.True(page.Records[0].OrderTime.After(page.Records[1].OrderTime))
	suite.Require().Len(page.Records[0].Lines, 2)
	suite.Equal("Rice", page.Records[0].Lines[0].Name)
	suite.Equal("2.00", page.Records[0].Lines[0].UnitPrice.String())

	q, err = queries.NewGetOrderHistoryQuery(42, order.Unknown, 2, 2)
	suite.Require().NoError(err)
	page, err = queries.NewGetOrderHistoryQueryHandler(suite.pg.DB).Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Len(page.Records, 1)
}

func (suite *OrderQueriesIntegrationTestSuite) TestHistory_FiltersByStatus() {
	ctx := suite.T().Context()
	now := time.Now()
	suite.seed(42, "13800000000", now, order.PendingPayment)
	suite.seed(42, "13800000000", now, order.Completed)

	q, err := queries.NewGetOrderHistoryQuery(42, order.Completed, 1, 10)
	suite.Require().NoError(err)
	page, err := queries.NewGetOrderHistoryQueryHandler(suite.pg.DB).Handle(ctx, q)

	suite.Require().NoError(err)
	suite.Equal(int64(1), page.Total)
	suite.Equal(order.Completed, page.Records[0].Status)
	suite.NotNil(page.Records[0].DeliveryTime)
}

func (suite *OrderQueriesIntegrationTestSuite) TestSearch_FiltersAndSummarizes() {
	ctx := suite.T().Context()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.seed(42, "13800000000", base, order.ToBeConfirmed)
	suite.seed(7, "13911112222", base.Add(24*time.Hour), order.ToBeConfirmed)
	suite.seed(8, "13911113333", base.Add(48*time.Hour), order.Confirmed)

	tests := []struct {
		name   string
		filter queries.OrderFilter
		want   int64
	}{
		{name: "no filter", want: 3},
		{name: "status", filter: queries.OrderFilter{Status: order.ToBeConfirmed}, want: 2},
		{name: "phone substring", filter: queries.OrderFilter{Phone: "1391111"}, want: 2},
		{name: "number substring", filter: queries.OrderFilter{Number: "000002"}, want: 1},
		{name: "wildcard is literal", filter: queries.OrderFilter{Phone: "%"}, want: 0},
		{name: "time window", filter: queries.OrderFilter{Begin: ptr(base.Add(time.Hour)), End: ptr(base.Add(30 * time.Hour))}, want: 1},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			q, err := queries.NewSearchOrdersQuery(tt.filter, 1, 10)
			suite.Require().NoError(err)
			page, err := queries.NewSearchOrdersQueryHandler(suite.pg.DB).Handle(ctx, q)

			suite.Require().NoError(err)
			suite.Equal(tt.want, page.Total)
			for _, r := range page.Records {
				suite.Equal("Rice*1;Family Set*2;", r.Summary)
			}
		})
	}
}

func (suite *OrderQueriesIntegrationTestSuite) TestDetail_ChecksOwnership() {
	ctx := suite.T().Context()
	o := suite.seed(42, "13800000000", time.Now(), order.Confirmed)
	h := queries.NewGetOrderDetailQueryHandler(suite.pg.DB)

	own, err := queries.NewGetOwnOrderDetailQuery(42, o.ID())
	suite.Require().NoError(err)
	view, err := h.Handle(ctx, own)
	suite.Require().NoError(err)
	suite.Equal(o.Number(), view.Number)
	suite.Equal(order.Paid, view.PayStatus)
	suite.Equal("27.00", view.Amount.String())
	suite.Len(view.Lines, 2)

	foreign, err := queries.NewGetOwnOrderDetailQuery(7, o.ID())
	suite.Require().NoError(err)
	_, err = h.Handle(ctx, foreign)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	admin, err := queries.NewGetOrderDetailQuery(o.ID())
	suite.Require().NoError(err)
	_, err = h.Handle(ctx, admin)
	suite.NoError(err)

	missing, err := queries.NewGetOrderDetailQuery(o.ID() + 100)
	suite.Require().NoError(err)
	_, err = h.Handle(ctx, missing)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderQueriesIntegrationTestSuite) TestStatistics() {
	ctx := suite.T().Context()
	now := time.Now()
	suite.seed(1, "13800000000", now, order.PendingPayment)
	suite.seed(1, "13800000000", now, order.ToBeConfirmed)
	suite.seed(1, "13800000000", now, order.ToBeConfirmed)
	suite.seed(1, "13800000000", now, order.Confirmed)
	suite.seed(1, "13800000000", now, order.DeliveryInProgress)
	suite.seed(1, "13800000000", now, order.Completed)

	stats, err := queries.NewGetOrderStatisticsQueryHandler(suite.pg.DB).Handle(ctx, queries.NewGetOrderStatisticsQuery())

	suite.Require().NoError(err)
	suite.Equal(queries.GetOrderStatisticsQueryResponse{ToBeConfirmed: 2, Confirmed: 1, DeliveryInProgress: 1}, stats)
}

// seed stores an order for userID placed at orderTime and advanced to status.
func (suite *OrderQueriesIntegrationTestSuite) seed(userID int64, phone string, orderTime time.Time, status order.Status) *order.Order {
	ctx := suite.T().Context()
	suite.seeded++

	rice, err := kernel.ParseMoney("2.00")
	suite.Require().NoError(err)
	set, err := kernel.ParseMoney("12.50")
	suite.Require().NoError(err)
	l1, err := order.NewLineItem("Rice", "", 1, 0, "", 1, rice)
	suite.Require().NoError(err)
	l2, err := order.NewLineItem("Family Set", "", 0, 9, "", 2, set)
	suite.Require().NoError(err)
	d, err := order.NewDelivery(1, "Li Lei", phone, "1 Main St")
	suite.Require().NoError(err)

	o, err := order.NewOrder(fmt.Sprintf("20240101120000%06d", suite.seeded), userID, d, []order.LineItem{l1, l2}, "", orderTime)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, o))

	if status == order.PendingPayment {
		return o
	}
	_, err = o.MarkPaid("pi_1", o.Amount(), orderTime)
	suite.Require().NoError(err)
	for _, step := range []struct {
		reached order.Status
		next    func() error
	}{
		{order.ToBeConfirmed, o.Confirm},
		{order.Confirmed, o.Dispatch},
		{order.DeliveryInProgress, func() error { return o.Complete(orderTime) }},
	} {
		if status == step.reached {
			break
		}
		suite.Require().NoError(step.next())
	}
	suite.Require().NoError(suite.repo.Update(ctx, o))
	return o
}

func ptr[T any](v T) *T {
	return &v
}
