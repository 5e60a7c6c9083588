// Copyright 2022 The jackal Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dns

import (
	"context"
	"errors"
	"net"
	"sort"
	"strconv"
	"strings"
)

var errBadSRVFormat = errors.New("bad SRV record format")

var errNoTargets = errors.New("SRV record has no targets")

// SRVResolver resolves the set of servers published under an SRV record.
type SRVResolver struct {
	srv   string
	proto string
	name  string

	lookUpFn func(ctx context.Context, service, proto, name string) (cname string, addrs []*net.SRV, err error)
}

var srvDialer = net.Dialer{}

// NewSRVResolver creates and initializes a new SRVResolver instance.
func NewSRVResolver(service, proto, name string) *SRVResolver {
	r := net.Resolver{
		Dial: func(ctx context.Context, _, address string) (net.Conn, error) {
			return srvDialer.DialContext(ctx, "tcp", address) // force SRV resolution over TCP
		},
	}
	return &SRVResolver{
		srv:      service,
		proto:    proto,
		name:     name,
		lookUpFn: r.LookupSRV,
	}
}

// NewSRVResolverFromRecord creates a new SRVResolver for a "_service._proto.name" record.
func NewSRVResolverFromRecord(rec string) (*SRVResolver, error) {
	srv, proto, name, err := ParseSRVRecord(rec)
	if err != nil {
		return nil, err
	}
	return NewSRVResolver(srv, proto, name), nil
}

// Resolve returns the sorted list of "host:port" record targets.
func (r *SRVResolver) Resolve(ctx context.Context) ([]string, error) {
	_, addrs, err := r.lookUpFn(ctx, r.srv, r.proto, r.name)
	if err != nil {
		return nil, err
	}
	var targets []string
	for _, addr := range addrs {
		if addr.Target == "." {
			continue
		}
		host := strings.TrimSuffix(addr.Target, ".")
		port := strconv.Itoa(int(addr.Port))

		targets = append(targets, net.JoinHostPort(host, port))
	}
	if len(targets) == 0 {
		return nil, errNoTargets
	}
	sort.Strings(targets)
	return targets, nil
}

// ParseSRVRecord returns the different elements of SRV records by parsing rec string.
func ParseSRVRecord(rec string) (srv, proto, name string, err error) {
	splits := make([]string, 2)

	remaining := rec

	for i := 0; i < 2; i++ {
		idx := strings.Index(remaining, ".")
		if idx == -1 {
			return "", "", "", errBadSRVFormat
		}
		split := remaining[:idx]
		if !strings.HasPrefix(split, "_") {
			return "", "", "", errBadSRVFormat
		}
		splits[i] = split[1:]
		remaining = remaining[idx+1:]
	}
	if len(remaining) == 0 {
		return "", "", "", errBadSRVFormat
	}
	return splits[0], splits[1], remaining, nil
}
