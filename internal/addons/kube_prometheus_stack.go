package addons

// kubePrometheusStackRelease deploys Prometheus and Grafana so the
// exporter's metrics have somewhere to land. Installed into its own
// namespace since the stack is cluster-scoped.
func kubePrometheusStackRelease() Release {
	return Release{
		Name:      "kube-prometheus-stack",
		Namespace: "monitoring",
		RepoURL:   "https://prometheus-community.github.io/helm-charts",
		Chart:     "kube-prometheus-stack",
		Version:   "58.2.2",
		Values: map[string]interface{}{
			"grafana": map[string]interface{}{
				"enabled": true,
			},
			"prometheus": map[string]interface{}{
				"prometheusSpec": map[string]interface{}{
					// Pick up ServiceMonitors from any namespace, the
					// exporter lives in kraftner.
					"serviceMonitorSelectorNilUsesHelmValues": false,
				},
			},
		},
	}
}
