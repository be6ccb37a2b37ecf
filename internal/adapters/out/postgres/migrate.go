package postgres

import (
	"context"
	"fmt"

	"foodorder/internal/adapters/out/postgres/deliveryrepo"
	"foodorder/internal/adapters/out/postgres/orderrepo"
	"foodorder/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Schema names the set of tables a binary owns.
type Schema int

const (
	// OrderSchema is the orchestrator database: orders, order items and the outbox.
	OrderSchema Schema = iota
	// LedgerSchema is the delivery ledger database.
	LedgerSchema
)

// outboxNotifySQL makes Postgres announce messages that become pending on the
// outbox_messages channel. Each statement runs on its own.
var outboxNotifySQL = []string{
	`CREATE OR REPLACE FUNCTION notify_outbox_messages() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('` + outboxrepo.TableName + `', NEW.kind);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS outbox_messages_inserted ON ` + outboxrepo.TableName,
	`CREATE TRIGGER outbox_messages_inserted AFTER INSERT ON ` + outboxrepo.TableName + `
	FOR EACH ROW EXECUTE FUNCTION notify_outbox_messages()`,
	`DROP TRIGGER IF EXISTS outbox_messages_rearmed ON ` + outboxrepo.TableName,
	`CREATE TRIGGER outbox_messages_rearmed AFTER UPDATE OF status ON ` + outboxrepo.TableName + `
	FOR EACH ROW WHEN (OLD.status IS DISTINCT FROM NEW.status AND NEW.status = 'pending')
	EXECUTE FUNCTION notify_outbox_messages()`,
}

// Migrate creates or updates the tables of schema. On Postgres the order schema also
// gets the outbox notification triggers; other dialects rely on polling alone.
func Migrate(ctx context.Context, db *gorm.DB, schema Schema) error {
	tx := db.WithContext(ctx)

	switch schema {
	case OrderSchema:
		if err := tx.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}, &outboxrepo.MessageDTO{}); err != nil {
			return fmt.Errorf("migrate order schema: %w", err)
		}
		if db.Dialector.Name() != "postgres" {
			return nil
		}
		for _, stmt := range outboxNotifySQL {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("install outbox trigger: %w", err)
			}
		}
		return nil

	case LedgerSchema:
		if err := tx.AutoMigrate(&deliveryrepo.DeliveryDTO{}); err != nil {
			return fmt.Errorf("migrate ledger schema: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown schema %d", schema)
	}
}
