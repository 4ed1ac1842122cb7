package addons

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helm.sh/helm/v3/pkg/release"
	corev1 "k8s.io/api/core/v1"

	"github.com/kraftner/kraftner/internal/config"
)

type fakeInstaller struct {
	installed   []string
	uninstalled []string
	failOn      string
	deployed    map[string]*release.Release
}

func (f *fakeInstaller) InstallOrUpgrade(_ context.Context, releaseName, _, _, _ string, _ map[string]interface{}) (*release.Release, error) {
	if releaseName == f.failOn {
		return nil, errors.New("chart not found")
	}
	f.installed = append(f.installed, releaseName)
	return &release.Release{Name: releaseName}, nil
}

func (f *fakeInstaller) Status(releaseName string) (*release.Release, error) {
	return f.deployed[releaseName], nil
}

func (f *fakeInstaller) Uninstall(releaseName string) error {
	f.uninstalled = append(f.uninstalled, releaseName)
	return nil
}

type fakeK8s struct {
	secrets []*corev1.Secret
	deleted []string
	waited  []string
	waitErr error
}

func (f *fakeK8s) CreateSecret(_ context.Context, secret *corev1.Secret) error {
	f.secrets = append(f.secrets, secret)
	return nil
}

func (f *fakeK8s) DeleteSecret(_ context.Context, _, name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeK8s) WaitForDeployment(_ context.Context, namespace, name string, _ time.Duration) error {
	f.waited = append(f.waited, namespace+"/"+name)
	return f.waitErr
}

func newTestManager(installer *fakeInstaller, k8s *fakeK8s) *Manager {
	return &Manager{
		newInstaller: func(string) (HelmInstaller, error) { return installer, nil },
		k8s:          k8s,
	}
}

func addonConfig() *config.Config {
	cfg := &config.Config{ClusterName: "demo"}
	cfg.Addons.KafkaUI.Enabled = true
	cfg.Addons.KafkaExporter.Enabled = true
	return cfg
}

func TestApply_InstallsEnabledAddons(t *testing.T) {
	t.Parallel()

	installer := &fakeInstaller{}
	k8s := &fakeK8s{}
	m := newTestManager(installer, k8s)

	err := m.Apply(context.Background(), addonConfig(), []string{"192.0.2.10:9092", "192.0.2.11:9092"})
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-ui", "kafka-exporter"}, installer.installed)

	// Each chart's workload is verified rolled out after install.
	assert.Equal(t, []string{
		"kraftner/kafka-ui",
		"kraftner/kafka-exporter-prometheus-kafka-exporter",
	}, k8s.waited)

	require.NotEmpty(t, k8s.secrets)
	assert.Equal(t, "kafka-connection", k8s.secrets[0].Name)
	assert.Equal(t, "192.0.2.10:9092,192.0.2.11:9092", k8s.secrets[0].StringData["bootstrap.servers"])
}

func TestApply_NothingEnabled(t *testing.T) {
	t.Parallel()

	installer := &fakeInstaller{}
	m := newTestManager(installer, &fakeK8s{})

	err := m.Apply(context.Background(), &config.Config{ClusterName: "demo"}, []string{"192.0.2.10:9092"})
	require.NoError(t, err)
	assert.Empty(t, installer.installed)
}

func TestApply_RequiresBootstrapServers(t *testing.T) {
	t.Parallel()

	m := newTestManager(&fakeInstaller{}, &fakeK8s{})
	err := m.Apply(context.Background(), addonConfig(), nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "no bootstrap servers")
}

func TestApply_StopsOnFailure(t *testing.T) {
	t.Parallel()

	installer := &fakeInstaller{failOn: "kafka-ui"}
	m := newTestManager(installer, &fakeK8s{})

	err := m.Apply(context.Background(), addonConfig(), []string{"192.0.2.10:9092"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "installing addon kafka-ui")
	assert.Empty(t, installer.installed)
}

func TestApply_FailsWhenRolloutStalls(t *testing.T) {
	t.Parallel()

	k8s := &fakeK8s{waitErr: errors.New("deployment kraftner/kafka-ui not ready")}
	m := newTestManager(&fakeInstaller{}, k8s)

	err := m.Apply(context.Background(), addonConfig(), []string{"192.0.2.10:9092"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "addon kafka-ui")
	assert.ErrorContains(t, err, "not ready")
}

func TestList_ReportsDeployedState(t *testing.T) {
	t.Parallel()

	installer := &fakeInstaller{
		deployed: map[string]*release.Release{
			"kafka-ui": {
				Name: "kafka-ui",
				Info: &release.Info{Status: release.StatusDeployed},
			},
		},
	}
	m := newTestManager(installer, &fakeK8s{})

	statuses, err := m.List(context.Background(), addonConfig())
	require.NoError(t, err)
	require.Len(t, statuses, 4)

	byName := map[string]AddonStatus{}
	for _, st := range statuses {
		byName[st.Name] = st
	}

	ui := byName["kafka-ui"]
	assert.True(t, ui.Enabled)
	assert.True(t, ui.Installed)
	assert.Equal(t, "deployed", ui.Status)

	// Enabled in the profile but never applied.
	exporter := byName["kafka-exporter"]
	assert.True(t, exporter.Enabled)
	assert.False(t, exporter.Installed)
	assert.Empty(t, exporter.Status)

	registry := byName["schema-registry"]
	assert.False(t, registry.Enabled)
	assert.False(t, registry.Installed)
}

func TestRemove_UninstallsEnabledAddons(t *testing.T) {
	t.Parallel()

	installer := &fakeInstaller{}
	k8s := &fakeK8s{}
	m := newTestManager(installer, k8s)

	require.NoError(t, m.Remove(context.Background(), addonConfig()))
	assert.Equal(t, []string{"kafka-ui", "kafka-exporter"}, installer.uninstalled)
	assert.Equal(t, []string{"kafka-connection", "kafka-connection"}, k8s.deleted)
}

func TestReleaseDefinitions(t *testing.T) {
	t.Parallel()

	ui := kafkaUIRelease("demo", "192.0.2.10:9092")
	assert.Equal(t, "kafka-ui", ui.Chart)
	assert.Equal(t, "kraftner", ui.Namespace)

	exporter := kafkaExporterRelease("192.0.2.10:9092,192.0.2.11:9092")
	assert.Equal(t, "prometheus-kafka-exporter", exporter.Chart)
	assert.Len(t, exporter.Values["kafkaServer"], 2)

	registry := schemaRegistryRelease("192.0.2.10:9092")
	assert.Equal(t, "schema-registry", registry.Chart)

	stack := kubePrometheusStackRelease()
	assert.Equal(t, "monitoring", stack.Namespace)
}
