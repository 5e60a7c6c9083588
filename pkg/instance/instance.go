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

package instance

import (
	"net"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	envInstanceID = "ZKWATCH_INSTANCE_ID"
	envHostName   = "ZKWATCH_HOSTNAME"

	fallbackHostname = "localhost"
)

var (
	instID, hostName string
)

var (
	readCachedResults  = true
	interfaceAddresses = net.InterfaceAddrs
)

func init() {
	instID = getID()
	hostName = getHostname()
}

// ID returns the identifier used to label this process metrics and logs.
func ID() string {
	if readCachedResults {
		return instID
	}
	return getID()
}

// Hostname returns the host name this process is reachable at.
func Hostname() string {
	if readCachedResults {
		return hostName
	}
	return getHostname()
}

func getID() string {
	if id := os.Getenv(envInstanceID); len(id) > 0 {
		return id
	}
	return uuid.New().String()
}

func getHostname() string {
	if fqdn := os.Getenv(envHostName); len(fqdn) > 0 {
		return fqdn
	}
	if ip, err := localIPv4(); err == nil {
		return ip
	}
	return fallbackHostname
}

func localIPv4() (string, error) {
	addresses, err := interfaceAddresses()
	if err != nil {
		return "", err
	}
	for _, addr := range addresses {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() || ipNet.IP.To4() == nil {
			continue
		}
		return ipNet.IP.String(), nil
	}
	return "", errors.New("instance: no local ipv4 address found")
}
