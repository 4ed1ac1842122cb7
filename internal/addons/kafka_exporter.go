package addons

import "strings"

// kafkaExporterRelease deploys the Prometheus Kafka exporter scraping
// consumer group lag and topic metrics from the brokers.
func kafkaExporterRelease(servers string) Release {
	kafkaServers := make([]interface{}, 0)
	for _, s := range strings.Split(servers, ",") {
		if s != "" {
			kafkaServers = append(kafkaServers, s)
		}
	}

	return Release{
		Name:       "kafka-exporter",
		Namespace:  "kraftner",
		RepoURL:    "https://prometheus-community.github.io/helm-charts",
		Chart:      "prometheus-kafka-exporter",
		Version:    "2.10.0",
		Deployment: "kafka-exporter-prometheus-kafka-exporter",
		Values: map[string]interface{}{
			"kafkaServer": kafkaServers,
			"prometheus": map[string]interface{}{
				"serviceMonitor": map[string]interface{}{
					"enabled": true,
				},
			},
		},
	}
}
