// Package addons installs optional Kafka ecosystem components — UI,
// metrics exporter, schema registry, monitoring stack — into an
// existing Kubernetes cluster pointed at by the profile's kubeconfig.
package addons

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"helm.sh/helm/v3/pkg/release"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kraftner/kraftner/internal/addons/helm"
	"github.com/kraftner/kraftner/internal/addons/k8sclient"
	"github.com/kraftner/kraftner/internal/config"
)

// Release describes one chart installation.
type Release struct {
	Name      string
	Namespace string
	RepoURL   string
	Chart     string
	Version   string
	Values    map[string]interface{}

	// Deployment names the chart's main workload. When set, Apply
	// verifies it is fully rolled out after installing. Charts whose
	// workloads are not plain deployments leave it empty.
	Deployment string
}

// HelmInstaller is the surface of helm.Client the manager uses.
type HelmInstaller interface {
	InstallOrUpgrade(ctx context.Context, releaseName, repoURL, chartName, version string, values map[string]interface{}) (*release.Release, error)
	Status(releaseName string) (*release.Release, error)
	Uninstall(releaseName string) error
}

// AddonStatus is one row of the addon listing: what the profile wants
// next to what the cluster runs.
type AddonStatus struct {
	Name      string
	Namespace string
	Enabled   bool
	Installed bool
	Status    string
	Version   string
}

// connectionSecretName holds the bootstrap servers for addons that read
// their Kafka endpoint from a secret.
const connectionSecretName = "kafka-connection"

// readyTimeout bounds the post-install rollout check per addon.
const readyTimeout = 5 * time.Minute

// Manager installs the enabled addons.
type Manager struct {
	kubeconfig []byte

	// newInstaller is swappable in tests.
	newInstaller func(namespace string) (HelmInstaller, error)
	k8s          k8sclient.Client
}

// NewManager creates a manager for the cluster behind kubeconfigPath.
func NewManager(kubeconfigPath string) (*Manager, error) {
	if kubeconfigPath == "" {
		return nil, fmt.Errorf("kubeconfig path is required for addon installation")
	}
	// #nosec G304
	kubeconfig, err := os.ReadFile(kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading kubeconfig: %w", err)
	}

	k8s, err := k8sclient.NewFromKubeconfig(kubeconfig)
	if err != nil {
		return nil, err
	}

	return &Manager{
		kubeconfig: kubeconfig,
		newInstaller: func(namespace string) (HelmInstaller, error) {
			return helm.NewClient(kubeconfig, namespace)
		},
		k8s: k8s,
	}, nil
}

// Apply installs every enabled addon. bootstrapServers lists the broker
// client endpoints ("host:9092") the addons should connect to.
func (m *Manager) Apply(ctx context.Context, cfg *config.Config, bootstrapServers []string) error {
	if !cfg.Addons.AnyEnabled() {
		log.Println("no addons enabled, nothing to do")
		return nil
	}
	if len(bootstrapServers) == 0 {
		return fmt.Errorf("no bootstrap servers, is the cluster provisioned?")
	}

	servers := strings.Join(bootstrapServers, ",")

	for _, rel := range enabledReleases(cfg, servers) {
		log.Printf("installing addon %s (chart %s %s)", rel.Name, rel.Chart, rel.Version)

		installer, err := m.newInstaller(rel.Namespace)
		if err != nil {
			return err
		}
		if _, err := installer.InstallOrUpgrade(ctx, rel.Name, rel.RepoURL, rel.Chart, rel.Version, rel.Values); err != nil {
			return fmt.Errorf("installing addon %s: %w", rel.Name, err)
		}

		if rel.Deployment != "" {
			if err := m.k8s.WaitForDeployment(ctx, rel.Namespace, rel.Deployment, readyTimeout); err != nil {
				return fmt.Errorf("addon %s: %w", rel.Name, err)
			}
		}

		// The namespace exists once the chart is installed.
		if err := m.ensureConnectionSecret(ctx, rel.Namespace, servers); err != nil {
			return err
		}
	}
	return nil
}

// List reports every known addon with its configured toggle and, when
// installed, the deployed release status and chart version. Listing
// needs only the kubeconfig, not a provisioned cluster.
func (m *Manager) List(ctx context.Context, cfg *config.Config) ([]AddonStatus, error) {
	entries := []struct {
		rel     Release
		enabled bool
	}{
		{kafkaUIRelease(cfg.ClusterName, ""), cfg.Addons.KafkaUI.Enabled},
		{kafkaExporterRelease(""), cfg.Addons.KafkaExporter.Enabled},
		{schemaRegistryRelease(""), cfg.Addons.SchemaRegistry.Enabled},
		{kubePrometheusStackRelease(), cfg.Addons.KubePrometheusStack.Enabled},
	}

	statuses := make([]AddonStatus, 0, len(entries))
	for _, e := range entries {
		st := AddonStatus{
			Name:      e.rel.Name,
			Namespace: e.rel.Namespace,
			Enabled:   e.enabled,
			Version:   e.rel.Version,
		}

		installer, err := m.newInstaller(e.rel.Namespace)
		if err != nil {
			return nil, err
		}
		deployed, err := installer.Status(e.rel.Name)
		if err != nil {
			return nil, fmt.Errorf("querying addon %s: %w", e.rel.Name, err)
		}
		if deployed != nil {
			st.Installed = true
			if deployed.Info != nil {
				st.Status = deployed.Info.Status.String()
			}
			if deployed.Chart != nil && deployed.Chart.Metadata != nil {
				st.Version = deployed.Chart.Metadata.Version
			}
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

// Remove uninstalls every enabled addon.
func (m *Manager) Remove(ctx context.Context, cfg *config.Config) error {
	for _, rel := range enabledReleases(cfg, "") {
		log.Printf("removing addon %s", rel.Name)

		installer, err := m.newInstaller(rel.Namespace)
		if err != nil {
			return err
		}
		if err := installer.Uninstall(rel.Name); err != nil {
			return fmt.Errorf("removing addon %s: %w", rel.Name, err)
		}
		if err := m.k8s.DeleteSecret(ctx, rel.Namespace, connectionSecretName); err != nil {
			return err
		}
	}
	return nil
}

func enabledReleases(cfg *config.Config, servers string) []Release {
	var releases []Release
	if cfg.Addons.KafkaUI.Enabled {
		releases = append(releases, kafkaUIRelease(cfg.ClusterName, servers))
	}
	if cfg.Addons.KafkaExporter.Enabled {
		releases = append(releases, kafkaExporterRelease(servers))
	}
	if cfg.Addons.SchemaRegistry.Enabled {
		releases = append(releases, schemaRegistryRelease(servers))
	}
	if cfg.Addons.KubePrometheusStack.Enabled {
		releases = append(releases, kubePrometheusStackRelease())
	}
	return releases
}

func (m *Manager) ensureConnectionSecret(ctx context.Context, namespace, servers string) error {
	return m.k8s.CreateSecret(ctx, &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      connectionSecretName,
			Namespace: namespace,
		},
		StringData: map[string]string{
			"bootstrap.servers": servers,
		},
	})
}
