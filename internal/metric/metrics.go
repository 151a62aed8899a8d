package metric

// Metric names, as printed in training logs.
const (
	NameRPNAcc          = "RPNAcc"
	NameRPNLogLoss      = "RPNLogLoss"
	NameRPNL1Loss       = "RPNL1Loss"
	NameRCNNAcc         = "RCNNAcc"
	NameRCNNLogLoss     = "RCNNLogLoss"
	NameRCNNL1Loss      = "RCNNL1Loss"
	NameRCNNKeypointAcc = "RCNNKeypointAcc"
)

// NewRPNAccuracy creates the proposal classification accuracy metric.
func NewRPNAccuracy() *Metric {
	return New(NameRPNAcc, RPNNames(), RPNAccuracy{})
}

// NewRPNLogLoss creates the proposal classification log-loss metric.
func NewRPNLogLoss() *Metric {
	return New(NameRPNLogLoss, RPNNames(), RPNLogLoss{})
}

// NewRPNL1Loss creates the proposal box regression loss metric.
func NewRPNL1Loss() *Metric {
	return New(NameRPNL1Loss, RPNNames(), RPNL1Loss{})
}

// NewRCNNAccuracy creates the region classification accuracy metric.
// fused selects the end-to-end tensor layout.
func NewRCNNAccuracy(fused bool) *Metric {
	return New(NameRCNNAcc, RCNNNames(fused), RCNNAccuracy{Fused: fused})
}

// NewRCNNLogLoss creates the region classification log-loss metric.
func NewRCNNLogLoss(fused bool) *Metric {
	return New(NameRCNNLogLoss, RCNNNames(fused), RCNNLogLoss{Fused: fused})
}

// NewRCNNL1Loss creates the region box regression loss metric.
func NewRCNNL1Loss(fused bool) *Metric {
	return New(NameRCNNL1Loss, RCNNNames(fused), RCNNL1Loss{Fused: fused})
}

// NewKeypointAccuracy creates the keypoint side accuracy metric.
func NewKeypointAccuracy(fused bool) *Metric {
	return New(NameRCNNKeypointAcc, RCNNNames(fused), KeypointAccuracy{Fused: fused})
}

// DefaultMetrics returns the metrics a pipeline reports during training.
func DefaultMetrics(p Pipeline) []*Metric {
	switch p {
	case PipelineRPN:
		return []*Metric{NewRPNAccuracy(), NewRPNLogLoss(), NewRPNL1Loss()}
	case PipelineRCNN:
		return []*Metric{NewRCNNAccuracy(false), NewRCNNLogLoss(false), NewRCNNL1Loss(false)}
	default:
		return []*Metric{
			NewRPNAccuracy(), NewRPNLogLoss(), NewRPNL1Loss(),
			NewRCNNAccuracy(true), NewRCNNLogLoss(true), NewRCNNL1Loss(true),
			NewKeypointAccuracy(true),
		}
	}
}
