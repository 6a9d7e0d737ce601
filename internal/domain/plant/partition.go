package plant

// Partition names a lifecycle stage an entity can be filed under
type Partition string

const (
	PartitionOpen        Partition = "open"
	PartitionShipped     Partition = "shipped"
	PartitionClosed      Partition = "closed"
	PartitionUnbilled    Partition = "unbilled"
	PartitionUnscheduled Partition = "unscheduled"
	PartitionScheduled   Partition = "scheduled"
	PartitionTracked     Partition = "tracked"
	PartitionHistory     Partition = "history"
)

// String returns the string representation of the Partition
func (p Partition) String() string {
	return string(p)
}

// Entity kinds used in error messages
const (
	KindSalesOrder      = "sales order"
	KindProductionOrder = "production order"
	KindPurchaseOrder   = "purchase order"
	KindShipment        = "shipment"
)
