package mysql

import (
	"context"
	"database/sql"
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"

	domorder "example.com/trendy-store/internal/domain/order"
)

const mysqlDuplicateEntry = 1062

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `
    id, order_number, user_id, subtotal, discount, shipping, total,
    payment_method, status, cancellation_reason, cancelled_at,
    first_name, last_name, email, phone, address, district, city, postal_code,
    created_at, updated_at
`

func (r *OrderRepository) Save(ctx context.Context, o *domorder.Order) (_ *domorder.Order, retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO orders (
            order_number, user_id, subtotal, discount, shipping, total,
            payment_method, status,
            first_name, last_name, email, phone, address, district, city, postal_code,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
		o.OrderNumber, o.UserID, o.Subtotal, o.Discount, o.Shipping, o.Total,
		o.PaymentMethod, o.Status,
		o.ShippingAddress.FirstName, o.ShippingAddress.LastName,
		o.ShippingAddress.Email, o.ShippingAddress.Phone,
		o.ShippingAddress.Address, o.ShippingAddress.District,
		o.ShippingAddress.City, o.ShippingAddress.PostalCode,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		var me *mysqldriver.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			retErr = domorder.ErrOrderNumberTaken
			return nil, retErr
		}
		retErr = err
		return nil, retErr
	}
	orderID, _ := res.LastInsertId()

	for i := range o.Items {
		item := &o.Items[i]
		ires, err := tx.ExecContext(ctx, `
            INSERT INTO order_items (
                order_id, product_id, product_name, product_image,
                unit_price, quantity, size, color, line_total
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        `,
			orderID, item.ProductID, item.ProductName, item.ProductImage,
			item.UnitPrice, item.Quantity, item.Size, item.Color, item.LineTotal,
		)
		if err != nil {
			retErr = err
			return nil, retErr
		}
		item.ID, _ = ires.LastInsertId()
		item.OrderID = orderID
	}

	if err := tx.Commit(); err != nil {
		retErr = err
		return nil, retErr
	}

	o.ID = orderID
	return o, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domorder.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	return r.scanOrder(ctx, row)
}

func (r *OrderRepository) FindByOrderNumber(ctx context.Context, number string) (*domorder.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = ?`, number)
	return r.scanOrder(ctx, row)
}

func (r *OrderRepository) FindByOwner(ctx context.Context, userID int64) ([]*domorder.Order, error) {
	return r.queryOrders(ctx, `
        SELECT `+orderColumns+` FROM orders
        WHERE user_id = ?
        ORDER BY created_at DESC, id DESC
    `, userID)
}

func (r *OrderRepository) List(ctx context.Context) ([]*domorder.Order, error) {
	return r.queryOrders(ctx, `
        SELECT `+orderColumns+` FROM orders
        ORDER BY created_at DESC, id DESC
    `)
}

func (r *OrderRepository) ExistsByOrderNumber(ctx context.Context, number string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM orders WHERE order_number = ?`, number).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domorder.Status, update domorder.StatusUpdate) error {
	reason := sql.NullString{String: update.CancellationReason, Valid: update.CancellationReason != ""}
	cancelledAt := sql.NullTime{}
	if update.CancelledAt != nil {
		cancelledAt = sql.NullTime{Time: *update.CancelledAt, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, `
        UPDATE orders
        SET status = ?, cancellation_reason = ?, cancelled_at = ?, updated_at = ?
        WHERE id = ?
    `, status, reason, cancelledAt, update.UpdatedAt, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domorder.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domorder.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Stats(ctx context.Context, userID *int64) (domorder.Stats, error) {
	query := `
        SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(AVG(total), 0)
        FROM orders
    `
	args := []any{}
	if userID != nil {
		query += ` WHERE user_id = ?`
		args = append(args, *userID)
	}

	var s domorder.Stats
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.TotalOrders, &s.TotalRevenue, &s.AverageOrderValue); err != nil {
		return domorder.Stats{}, err
	}
	return s, nil
}

func (r *OrderRepository) StatusCounts(ctx context.Context, userID *int64) (map[domorder.Status]int64, error) {
	query := `SELECT status, COUNT(*) FROM orders`
	args := []any{}
	if userID != nil {
		query += ` WHERE user_id = ?`
		args = append(args, *userID)
	}
	query += ` GROUP BY status ORDER BY COUNT(*) DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domorder.Status]int64)
	for rows.Next() {
		var status domorder.Status
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderRow(row rowScanner) (*domorder.Order, error) {
	var o domorder.Order
	var reason sql.NullString
	var cancelledAt sql.NullTime

	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Subtotal, &o.Discount, &o.Shipping, &o.Total,
		&o.PaymentMethod, &o.Status, &reason, &cancelledAt,
		&o.ShippingAddress.FirstName, &o.ShippingAddress.LastName,
		&o.ShippingAddress.Email, &o.ShippingAddress.Phone,
		&o.ShippingAddress.Address, &o.ShippingAddress.District,
		&o.ShippingAddress.City, &o.ShippingAddress.PostalCode,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.CancellationReason = reason.String
	if cancelledAt.Valid {
		t := cancelledAt.Time
		o.CancelledAt = &t
	}
	return &o, nil
}

func (r *OrderRepository) scanOrder(ctx context.Context, row *sql.Row) (*domorder.Order, error) {
	o, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*domorder.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domorder.Order
	for rows.Next() {
		o, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		o.Items, err = r.listItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) listItems(ctx context.Context, orderID int64) ([]domorder.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, order_id, product_id, product_name, product_image,
               unit_price, quantity, size, color, line_total
        FROM order_items
        WHERE order_id = ?
        ORDER BY id
    `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domorder.OrderItem
	for rows.Next() {
		var item domorder.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.ProductImage,
			&item.UnitPrice, &item.Quantity, &item.Size, &item.Color, &item.LineTotal,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
