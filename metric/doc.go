// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package metric provides running evaluation metrics for two-stage
// detectors trained with a region-proposal network (RPN) and a region
// classifier (RCNN).
//
// # Overview
//
// Each metric accumulates a sum and an instance count across batches and
// reports their ratio:
//   - RPNAcc, RCNNAcc: classification accuracy, label -1 ignored
//   - RPNLogLoss, RCNNLogLoss: negative log-likelihood of the true class
//   - RPNL1Loss, RCNNL1Loss: box regression loss per foreground instance
//   - RCNNKeypointAcc: keypoint side accuracy (end-to-end only)
//
// # Basic Usage
//
//	set := metric.NewSet(metric.PipelineEndToEnd)
//	for batch := range batches {
//	    if err := set.Update(batch.Labels, batch.Preds); err != nil {
//	        return err
//	    }
//	}
//	fmt.Println(set) // RPNAcc=0.981250	RPNLogLoss=0.061172	...
//
// # Tensor Layout
//
// Update takes the label and prediction lists in the order the pipeline
// emits them; PipelineNames lists that order. In the end-to-end pipeline the
// classifier and keypoint ground truth is produced inside the network, so
// rcnn_label and keypoints_label arrive as predictions.
//
// # Errors
//
// A failed update leaves every accumulator untouched. Errors wrap one of the
// Err* values and can be matched with errors.Is.
package metric
