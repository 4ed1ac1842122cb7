package helm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/release"
	"helm.sh/helm/v3/pkg/repo"
	"helm.sh/helm/v3/pkg/storage/driver"
)

const installTimeout = 10 * time.Minute

// Client installs and upgrades chart releases in a target cluster.
type Client struct {
	namespace    string
	actionConfig *action.Configuration
}

// NewClient creates a Helm client from kubeconfig bytes.
func NewClient(kubeconfig []byte, namespace string) (*Client, error) {
	actionConfig := new(action.Configuration)
	restGetter := NewRESTClientGetter(kubeconfig, namespace)

	// Suppress helm's debug chatter.
	if err := actionConfig.Init(restGetter, namespace, "secret", func(string, ...interface{}) {}); err != nil {
		return nil, fmt.Errorf("failed to initialize helm action config: %w", err)
	}

	return &Client{namespace: namespace, actionConfig: actionConfig}, nil
}

// InstallOrUpgrade installs a chart or upgrades the release if it
// already exists.
func (c *Client) InstallOrUpgrade(ctx context.Context, releaseName, repoURL, chartName, version string, values map[string]interface{}) (*release.Release, error) {
	histClient := action.NewHistory(c.actionConfig)
	histClient.Max = 1
	if _, err := histClient.Run(releaseName); err != nil {
		return c.install(ctx, releaseName, repoURL, chartName, version, values)
	}
	return c.upgrade(ctx, releaseName, repoURL, chartName, version, values)
}

// Status returns the deployed release, or nil when nothing by that
// name is installed.
func (c *Client) Status(releaseName string) (*release.Release, error) {
	statusClient := action.NewStatus(c.actionConfig)
	rel, err := statusClient.Run(releaseName)
	if errors.Is(err, driver.ErrReleaseNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get status of release %s: %w", releaseName, err)
	}
	return rel, nil
}

// Uninstall removes a release. A missing release is not an error.
func (c *Client) Uninstall(releaseName string) error {
	uninstallClient := action.NewUninstall(c.actionConfig)
	uninstallClient.IgnoreNotFound = true
	if _, err := uninstallClient.Run(releaseName); err != nil {
		return fmt.Errorf("failed to uninstall release %s: %w", releaseName, err)
	}
	return nil
}

func (c *Client) install(ctx context.Context, releaseName, repoURL, chartName, version string, values map[string]interface{}) (*release.Release, error) {
	installClient := action.NewInstall(c.actionConfig)
	installClient.ReleaseName = releaseName
	installClient.Namespace = c.namespace
	installClient.CreateNamespace = true
	installClient.Version = version
	installClient.Wait = true
	installClient.Timeout = installTimeout

	ch, err := c.loadChart(repoURL, chartName, version)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart: %w", err)
	}
	return installClient.RunWithContext(ctx, ch, values)
}

func (c *Client) upgrade(ctx context.Context, releaseName, repoURL, chartName, version string, values map[string]interface{}) (*release.Release, error) {
	upgradeClient := action.NewUpgrade(c.actionConfig)
	upgradeClient.Namespace = c.namespace
	upgradeClient.Version = version
	upgradeClient.Wait = true
	upgradeClient.Timeout = installTimeout
	upgradeClient.ReuseValues = false

	ch, err := c.loadChart(repoURL, chartName, version)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart: %w", err)
	}
	return upgradeClient.RunWithContext(ctx, releaseName, ch, values)
}

func (c *Client) loadChart(repoURL, chartName, version string) (*chart.Chart, error) {
	settings := cli.New()

	chartPath, err := repo.FindChartInRepoURL(repoURL, chartName, version, "", "", "", getter.All(settings))
	if err != nil {
		return nil, fmt.Errorf("failed to find chart %s in repo %s: %w", chartName, repoURL, err)
	}
	defer func() {
		_ = os.Remove(chartPath)
	}()

	return loader.Load(chartPath)
}
