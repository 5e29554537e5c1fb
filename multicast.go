// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

package norm

import (
	"fmt"
	"io"
	"net/netip"
	"strings"

	"gopkg.in/yaml.v3"
)

// Multicast_config collects optional multicast settings for a Session.
// Unset fields are left to libnorm's defaults. The With_ methods return a
// modified copy, so a Multicast_config can be shared and reused.
//
//	cfg := norm.New_multicast_config("224.1.2.3", 6003).With_ttl(64).With_loopback(true)
//	sess, err := inst.Create_session(cfg.Get_address(), cfg.Get_port(), norm.Node_any)
//	...
//	err = cfg.Apply(sess)
//
type Multicast_config struct {
	address    string
	port       uint16
	iface      *string
	ttl        *uint8
	loopback   *bool
	ssm_source *string
	tos        *uint8
}

func New_multicast_config(address string, port uint16) Multicast_config {
	return Multicast_config{address: address, port: port}
}

func ptr[T any](v T) *T {
	return &v
}

func (o Multicast_config) With_interface(interface_name string) Multicast_config {
	o.iface = ptr(interface_name)
	return o
}

func (o Multicast_config) With_ttl(ttl uint8) Multicast_config {
	o.ttl = ptr(ttl)
	return o
}

// With_loopback sets multicast loopback, see Session.Set_multicast_loopback().
//
func (o Multicast_config) With_loopback(enable bool) Multicast_config {
	o.loopback = ptr(enable)
	return o
}

// Source-specific multicast source address.
//
func (o Multicast_config) With_ssm_source(source_address string) Multicast_config {
	o.ssm_source = ptr(source_address)
	return o
}

func (o Multicast_config) With_tos(tos uint8) Multicast_config {
	o.tos = ptr(tos)
	return o
}

func (o Multicast_config) Get_address() string {
	return o.address
}

func (o Multicast_config) Get_port() uint16 {
	return o.port
}

func (o Multicast_config) Get_interface() (string, bool) {
	if o.iface == nil {
		return "", false
	}
	return *o.iface, true
}

func (o Multicast_config) Get_ttl() (uint8, bool) {
	if o.ttl == nil {
		return 0, false
	}
	return *o.ttl, true
}

func (o Multicast_config) Get_loopback() (bool, bool) {
	if o.loopback == nil {
		return false, false
	}
	return *o.loopback, true
}

func (o Multicast_config) Get_ssm_source() (string, bool) {
	if o.ssm_source == nil {
		return "", false
	}
	return *o.ssm_source, true
}

func (o Multicast_config) Get_tos() (uint8, bool) {
	if o.tos == nil {
		return 0, false
	}
	return *o.tos, true
}

// Apply makes one Session call per set field, in this order: TTL,
// multicast loopback, interface, SSM source, TOS. It stops at the first
// failure. Settings applied before the failure stay applied.
//
// The returned error names the field and wraps the Session error, so
// errors.Is(err, E_operation_failed) works.
//
func (o Multicast_config) Apply(sess *Session) error {
	if sess == nil {
		return invalid_parameter("multicast apply", "nil session")
	}
	if o.ttl != nil {
		if err := sess.Set_ttl(*o.ttl); err != nil {
			return fmt.Errorf("multicast ttl: %w", err)
		}
	}
	if o.loopback != nil {
		if err := sess.Set_multicast_loopback(*o.loopback); err != nil {
			return fmt.Errorf("multicast loopback: %w", err)
		}
	}
	if o.iface != nil {
		if err := sess.Set_multicast_interface(*o.iface); err != nil {
			return fmt.Errorf("multicast interface: %w", err)
		}
	}
	if o.ssm_source != nil {
		if err := sess.Set_ssm(*o.ssm_source); err != nil {
			return fmt.Errorf("multicast ssm_source: %w", err)
		}
	}
	if o.tos != nil {
		if err := sess.Set_tos(*o.tos); err != nil {
			return fmt.Errorf("multicast tos: %w", err)
		}
	}
	return nil
}

func (o Multicast_config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v:%v", o.address, o.port)
	if o.iface != nil {
		fmt.Fprintf(&b, " on %v", *o.iface)
	}
	if o.ttl != nil {
		fmt.Fprintf(&b, " ttl=%v", *o.ttl)
	}
	if o.loopback != nil {
		fmt.Fprintf(&b, " loopback=%v", *o.loopback)
	}
	if o.ssm_source != nil {
		fmt.Fprintf(&b, " ssm_source=%v", *o.ssm_source)
	}
	if o.tos != nil {
		fmt.Fprintf(&b, " tos=%v", *o.tos)
	}
	return b.String()
}

type multicast_yaml struct {
	Address   string  `yaml:"address"`
	Port      uint16  `yaml:"port"`
	Interface *string `yaml:"interface,omitempty"`
	TTL       *uint8  `yaml:"ttl,omitempty"`
	Loopback  *bool   `yaml:"loopback,omitempty"`
	SSMSource *string `yaml:"ssm_source,omitempty"`
	TOS       *uint8  `yaml:"tos,omitempty"`
}

var multicast_yaml_fields = map[string]bool{
	"address":    true,
	"port":       true,
	"interface":  true,
	"ttl":        true,
	"loopback":   true,
	"ssm_source": true,
	"tos":        true,
}

// UnmarshalYAML applies the same checks as Load_multicast_config() so a
// Multicast_config nested in a larger document is validated too.
//
func (o *Multicast_config) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			k := value.Content[i]
			if !multicast_yaml_fields[k.Value] {
				return fmt.Errorf("multicast config: line %d: field %v not found", k.Line, k.Value)
			}
		}
	}
	var y multicast_yaml
	if err := value.Decode(&y); err != nil {
		return fmt.Errorf("multicast config: %w", err)
	}
	return o.from_yaml(y)
}

func (o Multicast_config) MarshalYAML() (any, error) {
	return multicast_yaml{
		Address:   o.address,
		Port:      o.port,
		Interface: o.iface,
		TTL:       o.ttl,
		Loopback:  o.loopback,
		SSMSource: o.ssm_source,
		TOS:       o.tos,
	}, nil
}

// Load_multicast_config reads a YAML document:
//
//	address: 224.1.2.3
//	port: 6003
//	ttl: 64
//	loopback: true
//	interface: eth0
//	ssm_source: 10.0.0.1
//	tos: 16
//
// Only address and port are required.
//
func Load_multicast_config(r io.Reader) (Multicast_config, error) {
	var y multicast_yaml
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&y); err != nil {
		return Multicast_config{}, fmt.Errorf("multicast config: %w", err)
	}
	var cfg Multicast_config
	if err := cfg.from_yaml(y); err != nil {
		return Multicast_config{}, err
	}
	return cfg, nil
}

func (o *Multicast_config) from_yaml(y multicast_yaml) error {
	if y.Address == "" {
		return invalid_parameter("multicast config", "address is required")
	}
	if y.Port == 0 {
		return invalid_parameter("multicast config", "port is required")
	}
	for _, s := range []*string{&y.Address, y.Interface, y.SSMSource} {
		if s == nil {
			continue
		}
		if err := check_string("multicast config", *s); err != nil {
			return err
		}
	}
	*o = Multicast_config{
		address:    y.Address,
		port:       y.Port,
		iface:      y.Interface,
		ttl:        y.TTL,
		loopback:   y.Loopback,
		ssm_source: y.SSMSource,
		tos:        y.TOS,
	}
	return nil
}

func (o Multicast_config) Marshal_yaml() ([]byte, error) {
	return yaml.Marshal(o)
}

// Is_multicast_address reports whether address parses as an IPv4 or IPv6
// multicast address.
//
func Is_multicast_address(address string) bool {
	a, err := netip.ParseAddr(address)
	return err == nil && a.IsMulticast()
}
