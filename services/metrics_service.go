// Package services: services/metrics_service.go
package services

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"

	"go-cfp/logger"
)

// Namespace for all CFP metrics
var metricsNamespace = "GoCFP"

// metricsEnabled gates all CloudWatch calls; off by default so local and
// test runs never touch AWS.
var metricsEnabled = false

// Reuse a single CloudWatch client for all metrics calls
var cwClient = cloudwatch.New(session.Must(session.NewSession()))

// EnableMetrics switches CloudWatch publishing on.
func EnableMetrics() {
	metricsEnabled = true
}

// PublishSignupCompleted counts a fully completed signup.
func PublishSignupCompleted() {
	putMetric("SignupCompleted", 1)
}

// PublishSignupRejected counts a signup rejected by validation.
func PublishSignupRejected() {
	putMetric("SignupRejected", 1)
}

// PublishPhotoFailure counts a signup aborted by photo processing.
func PublishPhotoFailure() {
	putMetric("PhotoFailures", 1)
}

// PublishDuplicateAccount counts a signup that hit an existing email.
func PublishDuplicateAccount() {
	putMetric("DuplicateAccounts", 1)
}

// PublishStorageInconsistency counts orphaned accounts; this one should
// have an alarm on it.
func PublishStorageInconsistency() {
	putMetric("StorageInconsistencies", 1)
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func putMetric(metricName string, value float64) {
	if !metricsEnabled {
		return
	}

	_, err := cwClient.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Timestamp:  aws.Time(time.Now()),
				Value:      aws.Float64(value),
				Unit:       aws.String("Count"),
			},
		},
	})

	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
