package ports

type NodeRegistryPort interface {
	Register(executor NodeExecutor) error
	Unregister(name string) error
	Get(name string) (NodeExecutor, error)
	List() []string
}
