package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kraftner/kraftner/internal/addons"
	"github.com/kraftner/kraftner/internal/config"
	"github.com/kraftner/kraftner/internal/kafka"
	platform "github.com/kraftner/kraftner/internal/platform/hcloud"
	"github.com/kraftner/kraftner/internal/ui"
	"github.com/kraftner/kraftner/internal/util/labels"
)

// addonManager is the surface of addons.Manager the handlers use.
type addonManager interface {
	Apply(ctx context.Context, cfg *config.Config, bootstrapServers []string) error
	Remove(ctx context.Context, cfg *config.Config) error
	List(ctx context.Context, cfg *config.Config) ([]addons.AddonStatus, error)
}

// newAddonManager is swappable in tests.
var newAddonManager = func(kubeconfigPath string) (addonManager, error) {
	return addons.NewManager(kubeconfigPath)
}

// AddonsApply installs the enabled addons into the Kubernetes cluster
// behind the profile's kubeconfig.
func AddonsApply(ctx context.Context, profileName, kubeconfigPath string) error {
	_, cfg, err := loadResolvedProfile(profileName)
	if err != nil {
		return err
	}
	if !cfg.Addons.AnyEnabled() {
		fmt.Println(ui.Dim("no addons enabled in this profile"))
		return nil
	}
	if err := requireToken(cfg); err != nil {
		return err
	}

	manager, err := newAddonManager(resolveKubeconfig(cfg, kubeconfigPath))
	if err != nil {
		return err
	}

	servers, err := bootstrapServers(ctx, newInfraClient(cfg.HCloudToken), cfg.ClusterName)
	if err != nil {
		return err
	}

	if err := manager.Apply(ctx, cfg, servers); err != nil {
		return err
	}
	fmt.Println(ui.Success("addons installed"))
	return nil
}

// AddonsRemove uninstalls the enabled addons.
func AddonsRemove(ctx context.Context, profileName, kubeconfigPath string) error {
	_, cfg, err := loadResolvedProfile(profileName)
	if err != nil {
		return err
	}

	manager, err := newAddonManager(resolveKubeconfig(cfg, kubeconfigPath))
	if err != nil {
		return err
	}
	if err := manager.Remove(ctx, cfg); err != nil {
		return err
	}
	fmt.Println(ui.Success("addons removed"))
	return nil
}

// AddonsList shows every known addon with its profile toggle and
// deployed release status. Works without a cloud token: it only talks
// to the Kubernetes cluster.
func AddonsList(ctx context.Context, profileName, kubeconfigPath string) error {
	_, cfg, err := loadResolvedProfile(profileName)
	if err != nil {
		return err
	}

	manager, err := newAddonManager(resolveKubeconfig(cfg, kubeconfigPath))
	if err != nil {
		return err
	}
	statuses, err := manager.List(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Println(ui.AddonList(statuses))
	return nil
}

func resolveKubeconfig(cfg *config.Config, override string) string {
	if override != "" {
		return override
	}
	return cfg.Addons.KubeconfigPath
}

// bootstrapServers lists the public client endpoints of every broker.
func bootstrapServers(ctx context.Context, servers platform.ServerManager, clusterName string) ([]string, error) {
	brokers, err := servers.GetServersBySelector(ctx, labels.BrokerSelector(clusterName))
	if err != nil {
		return nil, fmt.Errorf("listing brokers: %w", err)
	}

	var endpoints []string
	for _, srv := range brokers {
		if srv.PublicNet.IPv4.IP == nil {
			continue
		}
		endpoints = append(endpoints, srv.PublicNet.IPv4.IP.String()+":"+strconv.Itoa(kafka.ClientPort))
	}
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no reachable brokers in cluster %q", clusterName)
	}
	return endpoints, nil
}
