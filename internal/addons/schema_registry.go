package addons

// schemaRegistryRelease deploys a Confluent-compatible schema registry
// backed by the cluster.
func schemaRegistryRelease(servers string) Release {
	return Release{
		Name:      "schema-registry",
		Namespace: "kraftner",
		RepoURL:   "https://charts.bitnami.com/bitnami",
		Chart:     "schema-registry",
		Version:   "16.3.5",
		Values: map[string]interface{}{
			"kafka": map[string]interface{}{
				"enabled": false,
			},
			"externalKafka": map[string]interface{}{
				"brokers": []interface{}{"PLAINTEXT://" + servers},
			},
		},
	}
}
