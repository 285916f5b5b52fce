package service

import (
	"context"
	"testing"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/dto"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/repository"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inventoryRepos(st storage.Storage) InventoryRepositories {
	return InventoryRepositories{
		Items:     repository.NewInventoryRepository(st),
		Movements: repository.NewMovementRepository(st),
		Transfers: repository.NewTransferRepository(st),
		Alerts:    repository.NewAlertRepository(st),
	}
}

func newTestInventoryService(t *testing.T, st storage.Storage) *inventoryService {
	t.Helper()
	svc := NewInventoryService(inventoryRepos(st)).(*inventoryService)
	svc.now = newFakeClock().Now
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func createItem(t *testing.T, svc InventoryService, stock int) *model.InventoryItem {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), dto.CreateItemRequest{
		Name:         "Cola 500ml",
		Category:     "soft-drinks",
		CurrentStock: stock,
		MinStock:     10,
		MaxStock:     100,
		UnitCost:     dec("2.50"),
		Location:     "Main Warehouse",
	})
	require.NoError(t, err)
	return item
}

func TestCreateItemDerivesFields(t *testing.T) {
	svc := newTestInventoryService(t, storage.NewMemoryStorage())

	item := createItem(t, svc, 40)
	assert.Equal(t, model.StatusInStock, item.Status)
	assertDecimal(t, "100", item.TotalValue)

	_, err := svc.CreateItem(context.Background(), dto.CreateItemRequest{Name: ""})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStockKeepsStatusConsistent(t *testing.T) {
	ctx := context.Background()
	svc := newTestInventoryService(t, storage.NewMemoryStorage())
	item := createItem(t, svc, 40)

	steps := []struct {
		qty    int
		typ    model.MovementType
		stock  int
		status model.StockStatus
		value  string
	}{
		{30, model.MovementOut, 10, model.StatusLowStock, "25"},
		{5, model.MovementIn, 15, model.StatusInStock, "37.5"},
		{85, model.MovementIn, 100, model.StatusOverstocked, "250"},
		{500, model.MovementOut, 0, model.StatusOutOfStock, "0"},
		{1, model.MovementIn, 1, model.StatusLowStock, "2.5"},
	}
	for _, step := range steps {
		got, err := svc.UpdateStock(ctx, item.ID, dto.UpdateStockRequest{Quantity: step.qty, Type: step.typ, Reason: "count"}, "ops")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, step.stock, got.CurrentStock)
		assert.Equal(t, step.status, got.Status)
		assert.Equal(t, model.DeriveStatus(got.CurrentStock, got.MinStock, got.MaxStock), got.Status)
		assertDecimal(t, step.value, got.TotalValue)
	}
}

func TestUpdateStockFloorsAtZeroAndLogsMovement(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	svc := newTestInventoryService(t, st)
	item := createItem(t, svc, 5)

	got, err := svc.UpdateStock(ctx, item.ID, dto.UpdateStockRequest{Quantity: 8, Type: model.MovementOut, Reason: "breakage"}, "ops")
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentStock)

	_, err = svc.UpdateStock(ctx, item.ID, dto.UpdateStockRequest{Quantity: 3, Type: model.MovementIn, Reason: "restock"}, "ops")
	require.NoError(t, err)

	movements, err := repository.NewMovementRepository(st).Load(ctx)
	require.NoError(t, err)
	require.Len(t, movements, 2)

	// most recent first
	assert.Equal(t, model.MovementIn, movements[0].Type)
	assert.Equal(t, 0, movements[0].PreviousStock)
	assert.Equal(t, 3, movements[0].NewStock)

	assert.Equal(t, model.MovementOut, movements[1].Type)
	assert.Equal(t, 8, movements[1].Quantity)
	assert.Equal(t, 5, movements[1].PreviousStock)
	assert.Equal(t, 0, movements[1].NewStock)
	assert.Equal(t, "Main Warehouse", movements[1].Location)
	assert.Equal(t, "ops", movements[1].PerformedBy)
}

func TestUpdateStockUnknownItemIsNoop(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	svc := newTestInventoryService(t, st)
	createItem(t, svc, 5)

	got, err := svc.UpdateStock(ctx, "missing", dto.UpdateStockRequest{Quantity: 1, Type: model.MovementIn}, "ops")
	require.NoError(t, err)
	assert.Nil(t, got)

	movements, err := svc.ListMovements(ctx, dto.MovementFilter{})
	require.NoError(t, err)
	assert.Zero(t, movements.Total)
}

func TestUpdateStockRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestInventoryService(t, storage.NewMemoryStorage())
	item := createItem(t, svc, 5)

	_, err := svc.UpdateStock(ctx, item.ID, dto.UpdateStockRequest{Quantity: -1, Type: model.MovementIn}, "ops")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.UpdateStock(ctx, item.ID, dto.UpdateStockRequest{Quantity: 1, Type: model.MovementTransfer}, "ops")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransferLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestInventoryService(t, storage.NewMemoryStorage())
	item := createItem(t, svc, 50)

	tr, err := svc.CreateTransfer(ctx, dto.CreateTransferRequest{
		ItemID:       item.ID,
		FromLocation: "Main Warehouse",
		ToLocation:   "Store 1",
		Quantity:     20,
		Type:         model.TransferWarehouseToStore,
	}, "Ravi")
	require.NoError(t, err)
	assert.Equal(t, model.TransferPending, tr.Status)

	// creating a transfer reserves nothing
	got, _ := svc.GetItem(ctx, item.ID)
	assert.Equal(t, 50, got.CurrentStock)

	// pending cannot jump to completed
	_, err = svc.UpdateTransferStatus(ctx, tr.ID, dto.UpdateTransferStatusRequest{Status: model.TransferCompleted})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateTransferStatus(ctx, tr.ID, dto.UpdateTransferStatusRequest{Status: model.TransferInTransit})
	require.NoError(t, err)
	done, err := svc.UpdateTransferStatus(ctx, tr.ID, dto.UpdateTransferStatusRequest{Status: model.TransferCompleted, Notes: "received"})
	require.NoError(t, err)
	assert.Equal(t, model.TransferCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	require.NotNil(t, done.ApprovedBy)
	assert.Equal(t, model.TransferOperator, *done.ApprovedBy)
	assert.Equal(t, "received", done.Notes)

	got, _ = svc.GetItem(ctx, item.ID)
	assert.Equal(t, 30, got.CurrentStock)

	movements, err := svc.ListMovements(ctx, dto.MovementFilter{ItemID: item.ID})
	require.NoError(t, err)
	require.Equal(t, 1, movements.Total)
	mv := movements.Data[0]
	assert.Equal(t, model.MovementOut, mv.Type)
	assert.Equal(t, 20, mv.Quantity)
	require.NotNil(t, mv.TransferID)
	assert.Equal(t, tr.ID, *mv.TransferID)

	// terminal
	_, err = svc.UpdateTransferStatus(ctx, tr.ID, dto.UpdateTransferStatusRequest{Status: model.TransferCancelled})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCompletingOtherTransferTypesMovesNothing(t *testing.T) {
	ctx := context.Background()
	svc := newTestInventoryService(t, storage.NewMemoryStorage())
	item := createItem(t, svc, 50)

	for _, typ := range []model.TransferType{
		model.TransferStoreToWarehouse,
		model.TransferWarehouseToWarehouse,
		model.TransferStoreToStore,
	} {
		tr, err := svc.CreateTransfer(ctx, dto.CreateTransferRequest{
			ItemID: item.ID, FromLocation: "A", ToLocation: "B", Quantity: 5, Type: typ,
		}, "Ravi")
		require.NoError(t, err)
		_, err = svc.UpdateTransferStatus(ctx, tr.ID, dto.UpdateTransferStatusRequest{Status: model.TransferInTransit})
		require.NoError(t, err)
		_, err = svc.UpdateTransferStatus(ctx, tr.ID, dto.UpdateTransferStatusRequest{Status: model.TransferCompleted})
		require.NoError(t, err)
	}

	got, _ := svc.GetItem(ctx, item.ID)
	assert.Equal(t, 50, got.CurrentStock)
	movements, _ := svc.ListMovements(ctx, dto.MovementFilter{})
	assert.Zero(t, movements.Total)
}

func TestTransferUnknownIDs(t *testing.T) {
	ctx := context.Background()
	svc := newTestInventoryService(t, storage.NewMemoryStorage())

	tr, err := svc.CreateTransfer(ctx, dto.CreateTransferRequest{
		ItemID: "missing", FromLocation: "A", ToLocation: "B", Quantity: 5, Type: model.TransferStoreToStore,
	}, "Ravi")
	require.NoError(t, err)
	assert.Nil(t, tr)

	tr, err = svc.UpdateTransferStatus(ctx, "missing", dto.UpdateTransferStatusRequest{Status: model.TransferCancelled})
	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestAlertsRaisedOnThresholdCrossing(t *testing.T) {
	ctx := context.Background()
	svc := newTestInventoryService(t, storage.NewMemoryStorage())
	item := createItem(t, svc, 40)

	alerts, _ := svc.ListAlerts(ctx, dto.AlertFilter{})
	assert.Empty(t, alerts)

	_, err := svc.UpdateStock(ctx, item.ID, dto.UpdateStockRequest{Quantity: 35, Type: model.MovementOut}, "ops")
	require.NoError(t, err)
	// still low: no second alert
	_, err = svc.UpdateStock(ctx, item.ID, dto.UpdateStockRequest{Quantity: 1, Type: model.MovementOut}, "ops")
	require.NoError(t, err)
	_, err = svc.UpdateStock(ctx, item.ID, dto.UpdateStockRequest{Quantity: 10, Type: model.MovementOut}, "ops")
	require.NoError(t, err)

	alerts, _ = svc.ListAlerts(ctx, dto.AlertFilter{})
	require.Len(t, alerts, 2)
	assert.Equal(t, model.AlertOutOfStock, alerts[0].Type)
	assert.Equal(t, model.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, model.AlertLowStock, alerts[1].Type)
	assert.Equal(t, model.SeverityWarning, alerts[1].Severity)

	acked, err := svc.AcknowledgeAlert(ctx, alerts[1].ID)
	require.NoError(t, err)
	assert.True(t, acked.Acknowledged)
	assert.NotNil(t, acked.AcknowledgedAt)
	assert.Equal(t, alerts[1].Message, acked.Message)

	open, _ := svc.ListAlerts(ctx, dto.AlertFilter{Unacknowledged: true})
	require.Len(t, open, 1)
	assert.Equal(t, alerts[0].ID, open[0].ID)

	missing, err := svc.AcknowledgeAlert(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAcknowledgeAlertOnlyMarksIt(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	svc := newTestInventoryService(t, st)
	clock := newFakeClock()
	svc.now = clock.Now
	item := createItem(t, svc, 40)

	_, err := svc.UpdateStock(ctx, item.ID, dto.UpdateStockRequest{Quantity: 40, Type: model.MovementOut}, "ops")
	require.NoError(t, err)
	alerts, _ := svc.ListAlerts(ctx, dto.AlertFilter{})
	require.Len(t, alerts, 1)
	before := alerts[0]

	clock.Advance(time.Hour)
	acked, err := svc.AcknowledgeAlert(ctx, before.ID)
	require.NoError(t, err)
	require.NotNil(t, acked)

	reloaded := newTestInventoryService(t, st)
	stored, _ := reloaded.ListAlerts(ctx, dto.AlertFilter{})
	require.Len(t, stored, 1)

	for _, after := range []model.InventoryAlert{*acked, stored[0]} {
		assert.True(t, after.Acknowledged)
		require.NotNil(t, after.AcknowledgedAt)
		assert.WithinDuration(t, clock.Now(), *after.AcknowledgedAt, 0)

		assert.Equal(t, before.ID, after.ID)
		assert.Equal(t, before.Type, after.Type)
		assert.Equal(t, before.ItemID, after.ItemID)
		assert.Equal(t, before.Message, after.Message)
		assert.Equal(t, before.Severity, after.Severity)
		assert.WithinDuration(t, before.CreatedAt, after.CreatedAt, 0)
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc := newTestInventoryService(t, storage.NewMemoryStorage())
	a := createItem(t, svc, 40) // in-stock, 100
	createItem(t, svc, 5)       // low-stock, 12.5
	createItem(t, svc, 0)       // out-of-stock
	createItem(t, svc, 120)     // overstocked, 300

	_, err := svc.CreateTransfer(ctx, dto.CreateTransferRequest{
		ItemID: a.ID, FromLocation: "A", ToLocation: "B", Quantity: 1, Type: model.TransferStoreToStore,
	}, "Ravi")
	require.NoError(t, err)

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.TotalItems)
	assert.Equal(t, 165, sum.TotalUnits)
	assertDecimal(t, "412.5", sum.TotalValue)
	assert.Equal(t, 1, sum.InStock)
	assert.Equal(t, 1, sum.LowStock)
	assert.Equal(t, 1, sum.OutOfStock)
	assert.Equal(t, 1, sum.Overstocked)
	assert.Equal(t, 1, sum.PendingTransfers)
}

func TestInventorySurvivesReload(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	svc := newTestInventoryService(t, st)
	item := createItem(t, svc, 40)
	_, err := svc.UpdateStock(ctx, item.ID, dto.UpdateStockRequest{Quantity: 4, Type: model.MovementOut}, "ops")
	require.NoError(t, err)

	reloaded := newTestInventoryService(t, st)
	got, err := reloaded.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 36, got.CurrentStock)

	removed, err := reloaded.RemoveItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	items, _ := reloaded.ListItems(ctx)
	assert.Empty(t, items)
}

func TestLoadRefreshesLegacyItems(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	legacy := `[{"id":"x","name":"Soda","currentStock":3,"minStock":5,"maxStock":50,"unitCost":2,"status":"in-stock","totalValue":0}]`
	require.NoError(t, st.Set(ctx, storage.KeyInventoryLegacy, []byte(legacy)))

	svc := newTestInventoryService(t, st)
	got, err := svc.GetItem(ctx, "x")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.StatusLowStock, got.Status)
	assertDecimal(t, "6", got.TotalValue)
}
