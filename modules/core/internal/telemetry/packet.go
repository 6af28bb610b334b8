package telemetry

import (
	metrics "github.com/armon/go-metrics"
	"github.com/cosmos/cosmos-sdk/telemetry"

	channeltypes "github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	coremetrics "github.com/ComposableFi/ibc-core/modules/core/metrics"
)

const (
	TimeoutTypeHeight    = "height"
	TimeoutTypeTimestamp = "timestamp"
)

func ReportSendPacket(packet channeltypes.Packet) {
	telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", "send_packet"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelSourcePort, packet.SourcePort),
			telemetry.NewLabel(coremetrics.LabelSourceChannel, packet.SourceChannel),
		},
	)
}

func ReportRecvPacket(packet channeltypes.Packet) {
	telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", "recv_packet"},
		1,
		destinationLabels(packet),
	)
}

func ReportIntentRecvPacket(packet channeltypes.Packet, marketMaker string) {
	telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", "intent_recv_packet"},
		1,
		append(destinationLabels(packet), telemetry.NewLabel(coremetrics.LabelMarketMaker, marketMaker)),
	)
}

func ReportAcknowledgePacket(packet channeltypes.Packet) {
	telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", "acknowledge_packet"},
		1,
		destinationLabels(packet),
	)
}

// ReportTimeoutPacket records a timeout. The timeout type is the bound that
// elapsed first on the counterparty.
func ReportTimeoutPacket(packet channeltypes.Packet, timeoutType string) {
	labels := append(destinationLabels(packet), telemetry.NewLabel(coremetrics.LabelTimeoutType, timeoutType))
	telemetry.IncrCounterWithLabels(
		[]string{"ibc", "timeout", "packet"},
		1,
		labels,
	)
}

func ReportBatch(batchType string, size int) {
	telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", "batch"},
		float32(size),
		[]metrics.Label{telemetry.NewLabel(coremetrics.LabelBatchType, batchType)},
	)
}

func destinationLabels(packet channeltypes.Packet) []metrics.Label {
	return []metrics.Label{
		telemetry.NewLabel(coremetrics.LabelSourcePort, packet.SourcePort),
		telemetry.NewLabel(coremetrics.LabelSourceChannel, packet.SourceChannel),
		telemetry.NewLabel(coremetrics.LabelDestinationPort, packet.DestinationPort),
		telemetry.NewLabel(coremetrics.LabelDestinationChannel, packet.DestinationChannel),
	}
}
