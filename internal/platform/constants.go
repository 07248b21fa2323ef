package platform

import "time"

// Compute shape shared by every workload.
const (
	WorkloadCPU       = 256
	WorkloadMemoryMiB = 512
	WorkloadDesired   = 1
)

// Managed database defaults.
const (
	DatabaseEngine        = "postgres"
	DatabaseEngineVersion = "17.2"
	DatabaseInstanceClass = "db.t2.micro"
	DatabaseStorageGiB    = 20
	DatabaseAdminUser     = "admin_user"
	DatabasePort          = 5432
)

// RemovalDestroy means the resource is deleted together with the platform.
const RemovalDestroy = "destroy"

// Liveness probe defaults.
const (
	ProbeProtocol         = "TCP"
	ProbeInterval         = 30 * time.Second
	ProbeFailureThreshold = 3
)

// Event broker defaults.
const (
	BrokerName           = "kafka-cluster"
	BrokerKafkaVersion   = "2.8.0"
	BrokerNodes          = 1
	BrokerInstanceType   = "kafka.m5.xlarge"
	BrokerAZDistribution = "DEFAULT"

	DefaultBrokerBootstrap = "localhost.localstack.cloud:4510,localhost.localstack.cloud:4511,localhost.localstack.cloud:4512"
)

// Network and cluster defaults.
const (
	NetworkMaxAZs          = 2
	DefaultDiscoveryDomain = "patient-management.local"
)

// Log sink defaults.
const (
	LogGroupPrefix   = "/ecs/"
	LogRetentionDays = 1
	LogDriver        = "awslogs"
)

// Load balancer defaults.
const (
	LoadBalancerListenerPort = 80
	LoadBalancerProtocol     = "HTTP"
	HealthCheckGracePeriod   = 60 * time.Second
)

// SecretLength is the length of generated secret values.
const SecretLength = 64

// Environment keys set by the service provisioner.
const (
	EnvKafkaBootstrapServers      = "SPRING_KAFKA_BOOTSTRAP_SERVERS"
	EnvDatasourceURL              = "SPRING_DATASOURCE_URL"
	EnvDatasourceUsername         = "SPRING_DATASOURCE_USERNAME"
	EnvDatasourcePassword         = "SPRING_DATASOURCE_PASSWORD"
	EnvHibernateDDLAuto           = "SPRING_JPA_HIBERNATE_DDL_AUTO"
	EnvSQLInitMode                = "SPRING_SQL_INIT_MODE"
	EnvHikariInitializationFailMs = "SPRING_DATASOURCE_HIKARI_INITIALIZATION_FAIL_TIMEOUT"
)

// Values of the derived datasource block.
const (
	HibernateDDLAutoUpdate   = "update"
	SQLInitModeAlways        = "always"
	HikariInitializationFail = "60000"
)

// Materialized attribute names. Values for these only exist once the
// execution engine has realized the resource.
const (
	AttrVPCID            = "vpc_id"
	AttrPrivateSubnetIDs = "private_subnet_ids"
	AttrPublicSubnetIDs  = "public_subnet_ids"
	AttrEndpointAddress  = "endpoint_address"
	AttrEndpointPort     = "endpoint_port"
	AttrPassword         = "password"
	AttrSecretValue      = "value"
	AttrClusterARN       = "arn"
	AttrBootstrapBrokers = "bootstrap_brokers"
	AttrTargetGroupARN   = "target_group_arn"
	AttrDNSName          = "dns_name"
)
