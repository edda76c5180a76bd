package handlers

import "net/http"

// Docs serves the static API documentation page. It is the only route
// besides /health that requires no token.
func Docs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(documentationHTML))
}

const documentationHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>API de Mídia - Documentação</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f7f9; color: #333; }
        .container { max-width: 900px; margin: 0 auto; background-color: #fff; padding: 30px; border-radius: 8px; box-shadow: 0 4px 12px rgba(0, 0, 0, 0.1); }
        h1 { color: #007bff; border-bottom: 3px solid #007bff; padding-bottom: 10px; }
        h2 { color: #343a40; border-bottom: 1px solid #dee2e6; padding-bottom: 5px; margin-top: 30px; }
        pre, code { background-color: #e9ecef; padding: 2px 4px; border-radius: 4px; font-size: 0.9em; overflow-x: auto; }
        pre { padding: 10px; border: 1px solid #ced4da; }
        table { width: 100%; border-collapse: collapse; margin-top: 15px; }
        th, td { padding: 12px 15px; text-align: left; border-bottom: 1px solid #dee2e6; }
        th { background-color: #f8f9fa; color: #495057; font-weight: 600; }
        .note { background-color: #fff3cd; color: #856404; padding: 15px; border-radius: 4px; border-left: 5px solid #ffc107; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>API de Mídia - Documentação</h1>
        <p>Endpoints para consumir os dados e o conteúdo de mídia.</p>

        <h2>Autenticação</h2>
        <p>As rotas de busca e geração de link de player exigem um <strong>Token de Acesso à API</strong> válido.</p>
        <ol>
            <li><strong>Preferencial (Header):</strong> <code>Authorization: Bearer SEU_TOKEN</code></li>
            <li><strong>Alternativa (Query):</strong> <code>/rota?token=SEU_TOKEN</code></li>
        </ol>

        <h2>Listagem e Busca</h2>
        <table>
            <tr><th>Endpoint</th><th>Descrição</th></tr>
            <tr><td><code>GET /</code></td><td>Lista todos os filmes.</td></tr>
            <tr><td><code>GET /categorias</code></td><td>Lista as categorias disponíveis.</td></tr>
            <tr><td><code>GET /genero/{genero}</code></td><td>Filtra filmes por categoria/gênero.</td></tr>
            <tr><td><code>GET /titulo/{titulo}</code></td><td>Busca filmes que contenham o título.</td></tr>
            <tr><td><code>GET /ano/{ano}</code></td><td>Filtra filmes por ano.</td></tr>
            <tr><td><code>GET /series_info</code></td><td>Resolve e enriquece uma série IPTV (parâmetros: <code>nome</code>, <code>series_id</code>).</td></tr>
        </table>

        <h2>Acesso à Mídia</h2>
        <table>
            <tr><th>Endpoint</th><th>Descrição</th></tr>
            <tr><td><code>GET /titulo/{titulo}/player</code></td><td>Gera uma URL temporária e mascarada para o player.</td></tr>
            <tr><td><code>GET /player_proxy/{id}?temp_token=...</code></td><td>Valida o token temporário e transmite o fluxo de mídia.</td></tr>
        </table>
        <div class="note">
            <p>O <code>link_temporario</code> deve ser usado como <code>src</code> no player de vídeo. Ele expira em 4 horas (14400s).</p>
        </div>

        <h2>Códigos de Erro</h2>
        <table>
            <tr><th>Código</th><th>Motivo</th><th>Exemplo</th></tr>
            <tr><td><code>401</code></td><td>Token inválido/ausente/expirado.</td><td><code>{"erro": "Acesso negado. O link expirou."}</code></td></tr>
            <tr><td><code>404</code></td><td>Nenhum conteúdo encontrado.</td><td><code>{"mensagem": "Nenhum conteúdo encontrado...", "filmes": []}</code></td></tr>
        </table>
    </div>
</body>
</html>
`
