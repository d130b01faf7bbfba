package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/TheRipper284/mh/internal/domain"
	"github.com/TheRipper284/mh/internal/repos"
	"github.com/TheRipper284/mh/internal/services"
)

func orderSvc(db *sqlx.DB) *services.OrderService {
	return services.NewOrderService(
		repos.NewCartRepo(db), repos.NewProductRepo(db), repos.NewCategoryRepo(db),
		repos.NewOrderRepo(db), repos.NewSessionRepo(db))
}

func TestSubmit_EmptyCartFails(t *testing.T) {
	db := memdb(t)
	svc := orderSvc(db)
	sid := "mesa-3"

	if err := repos.NewSessionRepo(db).BindTable(sid, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Submit(sid); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("no order document may be created, found %d", n)
	}
}

func TestSubmit_NoTableFails(t *testing.T) {
	db := memdb(t)
	cart := cartSvc(db)
	svc := orderSvc(db)
	sid := "sin-mesa"

	if _, err := cart.Add(sid, "refresco", 1, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Submit(sid); !errors.Is(err, domain.ErrNoTable) {
		t.Fatalf("want ErrNoTable, got %v", err)
	}
}

func TestSubmit_SnapshotsCartIntoOrder(t *testing.T) {
	db := memdb(t)
	cart := cartSvc(db)
	svc := orderSvc(db)
	sid := "mesa-7"

	if err := repos.NewSessionRepo(db).BindTable(sid, 7); err != nil {
		t.Fatal(err)
	}
	if _, err := cart.Add(sid, "refresco", 2, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := cart.Add(sid, "hawaiana", 1, "mediana"); err != nil {
		t.Fatal(err)
	}

	oid, err := svc.Submit(sid)
	if err != nil {
		t.Fatal(err)
	}
	o, items, err := svc.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if o.Total != 160.00 {
		t.Fatalf("want total 160.00, got %v", o.Total)
	}
	if o.Status != domain.StatusPendiente {
		t.Fatalf("new order must be pendiente, got %s", o.Status)
	}
	if o.TableNumber != 7 {
		t.Fatalf("want table 7, got %d", o.TableNumber)
	}
	if len(items) != 2 {
		t.Fatalf("want two snapshotted lines, got %d", len(items))
	}

	// the cart is cleared as a side effect
	cv, _ := cart.View(sid)
	if len(cv.Lines) != 0 {
		t.Fatalf("cart must be cleared after submit, got %+v", cv.Lines)
	}

	// later product edits must not alter the historical order
	if _, err := db.Exec(`UPDATE products SET name='Hawaiana Especial', price_mediana=999 WHERE id='hawaiana'`); err != nil {
		t.Fatal(err)
	}
	_, items2, err := svc.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range items2 {
		if it.ProductName == "Hawaiana Especial" || it.UnitPrice == 999 {
			t.Fatalf("snapshot leaked live product data: %+v", it)
		}
	}
}

func TestSubmit_SkipsDeletedProductLine(t *testing.T) {
	db := memdb(t)
	cart := cartSvc(db)
	svc := orderSvc(db)
	sid := "mesa-2"

	if err := repos.NewSessionRepo(db).BindTable(sid, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := cart.Add(sid, "refresco", 2, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := cart.Add(sid, "hawaiana", 1, "grande"); err != nil {
		t.Fatal(err)
	}
	// the pizza vanishes between add-to-cart and checkout
	if _, err := db.Exec(`DELETE FROM cart_items; INSERT INTO cart_items(cart_id,product_id,size,qty,unit_price)
	  SELECT 'mesa-2','refresco','',2,20 UNION ALL SELECT 'mesa-2','borrado','grande',1,150`); err != nil {
		t.Fatal(err)
	}

	oid, err := svc.Submit(sid)
	if err != nil {
		t.Fatal(err)
	}
	o, items, err := svc.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("deleted product's line must be skipped, got %d lines", len(items))
	}
	if o.Total != 40 {
		t.Fatalf("total must cover surviving lines only; want 40, got %v", o.Total)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := memdb(t)
	cart := cartSvc(db)
	svc := orderSvc(db)
	sid := "mesa-1"

	if err := repos.NewSessionRepo(db).BindTable(sid, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := cart.Add(sid, "refresco", 1, ""); err != nil {
		t.Fatal(err)
	}
	oid, err := svc.Submit(sid)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.UpdateStatus(oid, "cancelado"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus, got %v", err)
	}
	o, _, _ := svc.Get(oid)
	if o.Status != domain.StatusPendiente {
		t.Fatalf("status must be unchanged after rejected update, got %s", o.Status)
	}

	if err := svc.UpdateStatus(oid, domain.StatusListo); err != nil {
		t.Fatal(err)
	}
	// regression is allowed (manual correction)
	if err := svc.UpdateStatus(oid, domain.StatusPendiente); err != nil {
		t.Fatal(err)
	}
	o, _, _ = svc.Get(oid)
	if o.Status != domain.StatusPendiente {
		t.Fatalf("want pendiente after correction, got %s", o.Status)
	}
}

func TestActiveAndRecentlyCompleted(t *testing.T) {
	db := memdb(t)
	svc := orderSvc(db)

	now := time.Now().UTC()
	rfc := func(ts time.Time) string { return ts.Format(time.RFC3339) }
	mustExec(t, db, `INSERT INTO orders(id,table_number,total,status,created_at,updated_at) VALUES
	  ('o-old','1',100,'completado',?,?),
	  ('o-done','2',50,'completado',?,?),
	  ('o-prep','3',70,'en_preparacion',?,?),
	  ('o-new','4',30,'pendiente',?,?),
	  ('o-listo','5',80,'listo',?,?)`,
		rfc(now.Add(-48*time.Hour)), rfc(now.Add(-48*time.Hour)),
		rfc(now.Add(-2*time.Hour)), rfc(now.Add(-2*time.Hour)),
		rfc(now.Add(-1*time.Hour)), rfc(now.Add(-1*time.Hour)),
		rfc(now.Add(-10*time.Minute)), rfc(now.Add(-10*time.Minute)),
		rfc(now.Add(-5*time.Minute)), rfc(now.Add(-5*time.Minute)))

	active, err := svc.Active()
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 || active[0].ID != "o-new" || active[1].ID != "o-prep" {
		t.Fatalf("want [o-new o-prep] newest first, got %+v", active)
	}

	done, err := svc.RecentlyCompleted()
	if err != nil {
		t.Fatal(err)
	}
	if len(done) != 1 || done[0].ID != "o-done" {
		t.Fatalf("want only o-done within 24h, got %+v", done)
	}
}

func TestDailyCash(t *testing.T) {
	db := memdb(t)
	svc := orderSvc(db)

	// empty day: no division-by-zero, all zeros
	sum, err := svc.DailyCash(time.Now(), false)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Count != 0 || sum.Sum != 0 || sum.Avg != 0 {
		t.Fatalf("want zeros for empty day, got %+v", sum)
	}

	today := time.Now()
	noon := time.Date(today.Year(), today.Month(), today.Day(), 12, 0, 0, 0, time.Local).UTC()
	rfc := func(ts time.Time) string { return ts.Format(time.RFC3339) }
	mustExec(t, db, `INSERT INTO orders(id,table_number,total,status,created_at,updated_at) VALUES
	  ('c1','1',100,'completado',?,?),
	  ('c2','2',60,'pendiente',?,?),
	  ('c3','3',40,'completado',?,?)`,
		rfc(noon), rfc(noon), rfc(noon.Add(time.Hour)), rfc(noon.Add(time.Hour)),
		rfc(noon.Add(-90*24*time.Hour)), rfc(noon.Add(-90*24*time.Hour)))

	sum, err = svc.DailyCash(today, false)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Count != 2 || sum.Sum != 160 || sum.Avg != 80 {
		t.Fatalf("want count=2 sum=160 avg=80, got %+v", sum)
	}

	sum, err = svc.DailyCash(today, true)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Count != 1 || sum.Sum != 100 || sum.Avg != 100 {
		t.Fatalf("completado filter: want count=1 sum=100, got %+v", sum)
	}
}

// Round-trip: category -> product -> cart (chica) -> order line at price_chica.
func TestRoundTrip_PizzaChica(t *testing.T) {
	db := memdb(t)
	catalog := services.NewCatalogService(repos.NewCategoryRepo(db), repos.NewProductRepo(db))
	cart := cartSvc(db)
	svc := orderSvc(db)
	sid := "mesa-9"

	catID, err := catalog.CreateCategory(services.CategoryInput{Name: "PIZZAS", DisplayOrder: 9})
	if err != nil {
		t.Fatal(err)
	}
	price := func(v float64) *float64 { return &v }
	pid, err := catalog.CreateProduct(catID, services.ProductInput{
		Name:        "Mexicana",
		Ingredients: "chorizo, jalapeño",
		SizePrices: map[string]*float64{
			"individual": price(65), "chica": price(89.50), "mediana": price(125),
			"grande": price(155), "h4": price(199),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := repos.NewSessionRepo(db).BindTable(sid, 9); err != nil {
		t.Fatal(err)
	}
	if _, err := cart.Add(sid, pid, 1, "chica"); err != nil {
		t.Fatal(err)
	}
	oid, err := svc.Submit(sid)
	if err != nil {
		t.Fatal(err)
	}
	_, items, err := svc.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].UnitPrice != 89.50 {
		t.Fatalf("want unit price 89.50 from price_chica, got %+v", items)
	}
	if items[0].Size != "chica" || items[0].CategoryName != "PIZZAS" {
		t.Fatalf("snapshot fields wrong: %+v", items[0])
	}
}

func mustExec(t *testing.T, db *sqlx.DB, q string, args ...any) {
	t.Helper()
	if _, err := db.Exec(q, args...); err != nil {
		t.Fatal(err)
	}
}
