package addons

// kafkaUIRelease deploys the Kafbat UI for browsing topics and consumer
// groups.
func kafkaUIRelease(clusterName, servers string) Release {
	return Release{
		Name:      "kafka-ui",
		Namespace: "kraftner",
		RepoURL:   "https://kafbat.github.io/helm-charts",
		Chart:     "kafka-ui",
		Version:   "1.5.1",

		// Release name matches the chart name, so the chart's fullname
		// helper collapses to just the release name.
		Deployment: "kafka-ui",
		Values: map[string]interface{}{
			"yamlApplicationConfig": map[string]interface{}{
				"kafka": map[string]interface{}{
					"clusters": []interface{}{
						map[string]interface{}{
							"name":             clusterName,
							"bootstrapServers": servers,
						},
					},
				},
			},
		},
	}
}
