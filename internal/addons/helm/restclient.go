// Package helm installs charts programmatically against a kubeconfig
// held in memory.
package helm

import (
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"
)

// RESTClientGetter satisfies genericclioptions.RESTClientGetter from
// kubeconfig bytes, so no kubeconfig ever has to touch the filesystem.
type RESTClientGetter struct {
	kubeconfig []byte
	namespace  string
	restConfig *rest.Config
}

// NewRESTClientGetter creates a getter for the given kubeconfig bytes.
func NewRESTClientGetter(kubeconfig []byte, namespace string) *RESTClientGetter {
	return &RESTClientGetter{
		kubeconfig: kubeconfig,
		namespace:  namespace,
	}
}

func (g *RESTClientGetter) ToRESTConfig() (*rest.Config, error) {
	if g.restConfig != nil {
		return g.restConfig, nil
	}

	clientConfig, err := clientcmd.NewClientConfigFromBytes(g.kubeconfig)
	if err != nil {
		return nil, err
	}
	g.restConfig, err = clientConfig.ClientConfig()
	if err != nil {
		return nil, err
	}
	return g.restConfig, nil
}

func (g *RESTClientGetter) ToDiscoveryClient() (discovery.CachedDiscoveryInterface, error) {
	restConfig, err := g.ToRESTConfig()
	if err != nil {
		return nil, err
	}
	dc, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, err
	}
	return memory.NewMemCacheClient(dc), nil
}

func (g *RESTClientGetter) ToRESTMapper() (meta.RESTMapper, error) {
	dc, err := g.ToDiscoveryClient()
	if err != nil {
		return nil, err
	}
	return restmapper.NewDeferredDiscoveryRESTMapper(dc), nil
}

func (g *RESTClientGetter) ToRawKubeConfigLoader() clientcmd.ClientConfig {
	clientConfig, _ := clientcmd.NewClientConfigFromBytes(g.kubeconfig)
	return clientConfig
}
