// Package k8sclient provides the Kubernetes operations addon
// installation needs, working from kubeconfig bytes held in memory.
package k8sclient

import (
	"context"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// Client is the Kubernetes surface the addon manager depends on.
type Client interface {
	// CreateSecret creates or replaces a secret.
	CreateSecret(ctx context.Context, secret *corev1.Secret) error

	// DeleteSecret deletes a secret, returning nil if not found.
	DeleteSecret(ctx context.Context, namespace, name string) error

	// WaitForDeployment blocks until the deployment has as many ready
	// replicas as desired, or the timeout expires.
	WaitForDeployment(ctx context.Context, namespace, name string, timeout time.Duration) error
}

type client struct {
	clientset kubernetes.Interface
}

// NewFromKubeconfig creates a Client from kubeconfig bytes.
func NewFromKubeconfig(kubeconfig []byte) (Client, error) {
	restConfig, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST config from kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes clientset: %w", err)
	}

	return &client{clientset: clientset}, nil
}

// NewFromClients creates a Client from a pre-configured clientset, for
// tests with fakes.
func NewFromClients(clientset kubernetes.Interface) Client {
	return &client{clientset: clientset}
}

// WaitForDeployment blocks until the deployment is fully rolled out.
func (c *client) WaitForDeployment(ctx context.Context, namespace, name string, timeout time.Duration) error {
	err := wait.PollUntilContextTimeout(ctx, 5*time.Second, timeout, true, func(ctx context.Context) (bool, error) {
		dep, err := c.clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return false, nil
		}
		desired := int32(1)
		if dep.Spec.Replicas != nil {
			desired = *dep.Spec.Replicas
		}
		return dep.Status.ReadyReplicas >= desired, nil
	})
	if err != nil {
		return fmt.Errorf("deployment %s/%s not ready: %w", namespace, name, err)
	}
	return nil
}
