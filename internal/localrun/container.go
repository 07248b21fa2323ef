package localrun

import (
	"fmt"
	"net/netip"
	"sort"
	"strconv"

	"github.com/moby/moby/api/types/container"
	"github.com/moby/moby/api/types/network"
	"github.com/specialistvlad/caregrid/internal/node"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/token"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Labels stamped on every container.
const (
	LabelAddress   = "caregrid.address"
	LabelLogicalID = "caregrid.logical_id"
	LabelService   = "caregrid.service"
)

const (
	nanoCPUsPerUnit = 1_000_000_000 / 1024
	bytesPerMiB     = 1024 * 1024
)

type portMapping struct {
	ContainerPort int    `cty:"container_port"`
	HostPort      int    `cty:"host_port"`
	Protocol      string `cty:"protocol"`
}

type logging struct {
	Driver       string `cty:"driver"`
	Group        string `cty:"group"`
	StreamPrefix string `cty:"stream_prefix"`
}

// Spec is everything needed to create one container.
type Spec struct {
	Name       string
	Config     *container.Config
	HostConfig *container.HostConfig
}

// ContainerSpec renders a workload node into container create options.
// Every reference in the environment must be present in vals; the first
// missing one is reported as a *token.UnresolvedReferenceError.
func ContainerSpec(n *node.Node, vals token.Values) (*Spec, error) {
	if n.Kind() != nodeid.KindWorkload {
		return nil, fmt.Errorf("resource %s is not a workload", n.ID)
	}

	var (
		name, image, hostname string
		cpu, memoryMiB        int
		ports                 []portMapping
		rawEnv                map[string]string
		logs                  logging
	)
	for _, a := range []struct {
		name   string
		target any
	}{
		{"service_name", &name},
		{"image", &image},
		{"discovery_name", &hostname},
		{"cpu", &cpu},
		{"memory_mib", &memoryMiB},
		{"port_mappings", &ports},
		{"environment", &rawEnv},
		{"logging", &logs},
	} {
		if err := decodeAttr(n, a.name, a.target); err != nil {
			return nil, err
		}
	}

	env, err := resolveEnv(rawEnv, vals)
	if err != nil {
		return nil, fmt.Errorf("workload %s: %w", n.ID, err)
	}

	exposed := network.PortSet{}
	bindings := network.PortMap{}
	for _, pm := range ports {
		port, ok := network.PortFrom(uint16(pm.ContainerPort), network.IPProtocol(pm.Protocol))
		if !ok {
			return nil, fmt.Errorf("workload %s has invalid port %d/%s", n.ID, pm.ContainerPort, pm.Protocol)
		}
		exposed[port] = struct{}{}
		bindings[port] = append(bindings[port], network.PortBinding{
			HostIP:   netip.IPv4Unspecified(),
			HostPort: strconv.Itoa(pm.HostPort),
		})
	}

	return &Spec{
		Name: name,
		Config: &container.Config{
			Hostname:     hostname,
			Image:        image,
			Env:          env,
			ExposedPorts: exposed,
			Labels: map[string]string{
				LabelAddress:   n.ID.String(),
				LabelLogicalID: n.LogicalID.String(),
				LabelService:   name,
			},
		},
		HostConfig: &container.HostConfig{
			PortBindings: bindings,
			LogConfig: container.LogConfig{
				Type: logs.Driver,
				Config: map[string]string{
					"awslogs-group":         logs.Group,
					"awslogs-stream-prefix": logs.StreamPrefix,
				},
			},
			Resources: container.Resources{
				NanoCPUs: int64(cpu) * nanoCPUsPerUnit,
				Memory:   int64(memoryMiB) * bytesPerMiB,
			},
		},
	}, nil
}

func decodeAttr(n *node.Node, attr string, target any) error {
	v := n.Attribute(attr)
	if v == cty.NilVal || v.IsNull() {
		return fmt.Errorf("workload %s has no %s attribute", n.ID, attr)
	}
	if err := gocty.FromCtyValue(v, target); err != nil {
		return fmt.Errorf("workload %s: invalid %s attribute: %w", n.ID, attr, err)
	}
	return nil
}

// resolveEnv returns KEY=value pairs sorted by key.
func resolveEnv(raw map[string]string, vals token.Values) ([]string, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		v, err := token.Parse(raw[k])
		if err != nil {
			return nil, fmt.Errorf("environment %s: %w", k, err)
		}
		resolved, err := vals.Resolve(v)
		if err != nil {
			return nil, fmt.Errorf("environment %s: %w", k, err)
		}
		env = append(env, k+"="+resolved)
	}
	return env, nil
}
