package repository

import "testing"

func TestBuild_CollectsOptions(t *testing.T) {
	q := Build(
		WithID("a"),
		WithIDIn([]string{"b", "c"}),
		WithNull("revoked_at"),
		WithWhere("expires_at IS NULL OR expires_at > ?", 1),
		WithOrderAsc("created_at"),
		WithOrderDesc("id"),
		WithLimit(10),
		WithOffset(20),
	)

	conds := q.Conditions()
	if len(conds) != 4 {
		t.Fatalf("len(Conditions()) = %d, want 4", len(conds))
	}
	if conds[0].Kind() != KindEqual || conds[0].Field() != "id" || conds[0].Value() != "a" {
		t.Errorf("conds[0] = %s", conds[0])
	}
	if !conds[1].In() {
		t.Errorf("conds[1] should be IN, got %s", conds[1])
	}
	if conds[2].Kind() != KindIsNull {
		t.Errorf("conds[2] kind = %v, want KindIsNull", conds[2].Kind())
	}
	if conds[3].Kind() != KindRaw || len(conds[3].Args()) != 1 {
		t.Errorf("conds[3] = %s", conds[3])
	}

	orders := q.Orders()
	if len(orders) != 2 || !orders[0].Ascending() || orders[1].Ascending() {
		t.Errorf("unexpected orders %+v", orders)
	}
	if q.LimitValue() != 10 || q.OffsetValue() != 20 {
		t.Errorf("limit/offset = %d/%d", q.LimitValue(), q.OffsetValue())
	}
}

func TestQuery_ConditionsIsCopy(t *testing.T) {
	q := Build(WithID("a"))
	conds := q.Conditions()
	conds[0] = Condition{field: "other"}

	if q.Conditions()[0].Field() != "id" {
		t.Error("mutating the returned slice changed the query")
	}
}

func TestWithCreatedOrder(t *testing.T) {
	q := Build(WithCreatedOrder()...)
	orders := q.Orders()
	if len(orders) != 2 || orders[0].Field() != "created_at" || orders[1].Field() != "id" {
		t.Errorf("WithCreatedOrder() = %+v", orders)
	}
}
