// Package interfaces 定义 go-addrbook 的公共接口
//
// 一个接口文件对应一个实现目录：
//   - eventbus.go     - 事件总线（internal/core/eventbus）
//   - addressbook.go  - 地址簿与运行时回调（internal/core/addressbook）
//
// 外部网络运行时只依赖 LifecycleHandler，应用层观察者只依赖 AddressBook。
package interfaces
