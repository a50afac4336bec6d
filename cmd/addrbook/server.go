package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	pkgif "github.com/dep2p/go-addrbook/pkg/interfaces"
	"github.com/dep2p/go-addrbook/pkg/types"
)

// ============================================================================
//                              HTTP 观察接口
// ============================================================================

type peerView struct {
	ID              string        `json:"id"`
	Connected       bool          `json:"connected"`
	AgentVersion    string        `json:"agent_version,omitempty"`
	ProtocolVersion string        `json:"protocol_version,omitempty"`
	Protocols       []string      `json:"protocols,omitempty"`
	Addresses       []addressView `json:"addresses"`
	RTT             string        `json:"rtt,omitempty"`
	RTTFailures     uint32        `json:"rtt_failures,omitempty"`
}

type addressView struct {
	Addr   string              `json:"addr"`
	Source types.AddressSource `json:"source"`
}

type connectionView struct {
	Peer  string    `json:"peer"`
	Addr  string    `json:"addr"`
	Since time.Time `json:"since"`
}

// newRouter 创建 HTTP 路由
//
//	GET /metrics          prometheus 指标
//	GET /peers            所有已知节点
//	GET /peers/{id}       单个节点
//	GET /connections      活动连接
func newRouter(book pkgif.AddressBook, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Get("/peers", func(w http.ResponseWriter, _ *http.Request) {
		peers := book.Peers()
		out := make([]peerView, 0, len(peers))
		for _, p := range peers {
			if info, ok := book.Info(p); ok {
				out = append(out, viewPeer(book, p, info))
			}
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Get("/peers/{id}", func(w http.ResponseWriter, req *http.Request) {
		p, err := peer.Decode(chi.URLParam(req, "id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		info, ok := book.Info(p)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "peer not found"})
			return
		}
		writeJSON(w, http.StatusOK, viewPeer(book, p, info))
	})

	r.Get("/connections", func(w http.ResponseWriter, _ *http.Request) {
		conns := book.Connections()
		out := make([]connectionView, 0, len(conns))
		for _, c := range conns {
			out = append(out, connectionView{Peer: c.Peer.String(), Addr: c.Addr.String(), Since: c.Since})
		}
		writeJSON(w, http.StatusOK, out)
	})

	return r
}

func viewPeer(book pkgif.AddressBook, p peer.ID, info types.PeerInfo) peerView {
	v := peerView{
		ID:              p.String(),
		Connected:       book.IsConnected(p),
		AgentVersion:    info.AgentVersion,
		ProtocolVersion: info.ProtocolVersion,
		Protocols:       info.Protocols,
		Addresses:       make([]addressView, 0, len(info.Addresses)),
	}
	for _, e := range info.Addresses {
		v.Addresses = append(v.Addresses, addressView{Addr: e.Addr.String(), Source: e.Source})
	}
	if info.Rtt != nil {
		v.RTT = info.Rtt.Current().String()
		v.RTTFailures = info.Rtt.Failures()
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// describeEvent 渲染事件为单行文本
func describeEvent(evt types.Event) string {
	switch e := evt.(type) {
	case types.EvtDiscovered:
		return fmt.Sprintf("%s %s", e.Type(), e.Peer)
	case types.EvtDialFailure:
		return fmt.Sprintf("%s %s %s: %s", e.Type(), e.Peer, e.Addr, e.Error)
	case types.EvtUnreachable:
		return fmt.Sprintf("%s %s", e.Type(), e.Peer)
	case types.EvtNewInfo:
		return fmt.Sprintf("%s %s", e.Type(), e.Peer)
	case types.EvtConnected:
		return fmt.Sprintf("%s %s", e.Type(), e.Peer)
	case types.EvtDisconnected:
		return fmt.Sprintf("%s %s", e.Type(), e.Peer)
	case types.EvtConnectionEstablished:
		return fmt.Sprintf("%s %s %s", e.Type(), e.Peer, e.Conn.RemoteAddress())
	case types.EvtConnectionClosed:
		return fmt.Sprintf("%s %s %s", e.Type(), e.Peer, e.Conn.RemoteAddress())
	case types.EvtAddressChanged:
		return fmt.Sprintf("%s %s %s -> %s", e.Type(), e.Peer, e.Old.RemoteAddress(), e.New.RemoteAddress())
	case types.EvtNewListenAddr:
		return fmt.Sprintf("%s %s %s", e.Type(), e.Listener, e.Addr)
	case types.EvtExpiredListenAddr:
		return fmt.Sprintf("%s %s %s", e.Type(), e.Listener, e.Addr)
	case types.EvtNewExternalAddr:
		return fmt.Sprintf("%s %s", e.Type(), e.Addr)
	case types.EvtExpiredExternalAddr:
		return fmt.Sprintf("%s %s", e.Type(), e.Addr)
	case types.EvtSubscribed:
		return fmt.Sprintf("%s %s %s", e.Type(), e.Peer, e.Topic)
	case types.EvtUnsubscribed:
		return fmt.Sprintf("%s %s %s", e.Type(), e.Peer, e.Topic)
	default:
		return evt.Type()
	}
}
