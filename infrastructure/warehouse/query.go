package warehouse

// accountsQuery devolve uma linha por conta de cliente ativa com faturamento, pedidos e
// atividades comerciais agregadas. A raiz do CNPJ são os 8 primeiros dígitos.
const accountsQuery = `
WITH Faturamento AS (
    SELECT pessoa_id, SUM(valor_total) AS valor_total
    FROM dbo.rel_faturamento
    WHERE data_emissao >= DATEADD(MONTH, -6, GETDATE())
    GROUP BY pessoa_id
),
Followups AS (
    SELECT pessoa_id, COUNT(*) AS total_followups, MAX(data_cadastro) AS data_ultimo_followup
    FROM dbo.pessoas_followup_anexos
    GROUP BY pessoa_id
),
Contatos AS (
    SELECT pessoa_id, COUNT(*) AS total_contatos, MAX(data_cadastro) AS data_ultimo_contato
    FROM dbo.contatos
    GROUP BY pessoa_id
),
Oportunidades AS (
    SELECT conta_id AS pessoa_id, COUNT(*) AS total_oportunidades, MAX(data_cadastro) AS data_ultima_oportunidade
    FROM dbo.crm_oportunidades
    GROUP BY conta_id
),
UltimaVendaPorRaizCNPJ AS (
    SELECT LEFT(cpf_cnpj, 8) AS Raiz_CNPJ, MAX(data_ultima_venda) AS Data_Ultima_Venda_Grupo_CNPJ
    FROM dbo.pessoas
    WHERE data_ultima_venda IS NOT NULL
    GROUP BY LEFT(cpf_cnpj, 8)
),
Pedidos AS (
    SELECT pessoa_id, COUNT(*) AS total_pedidos
    FROM dbo.rel_faturamento
    WHERE data_emissao >= DATEADD(MONTH, -6, GETDATE())
    GROUP BY pessoa_id
),
Orcamentos AS (
    SELECT pessoa_cliente_id, COUNT(*) AS total_orcamentos, MAX(data_emissao) AS data_ultimo_orcamento
    FROM dbo.rel_crm_orcamentos
    GROUP BY pessoa_cliente_id
),
PedidosPorRevenda AS (
    SELECT
        p.revenda_id AS pessoa_id,
        COUNT(*) AS total_pedidos_revenda,
        SUM(p.valor_total) AS valor_total_revenda
    FROM dbo.rel_pedidos p
    WHERE p.revenda_id IS NOT NULL
        AND p.data_faturamento >= DATEADD(MONTH, -6, GETDATE())
    GROUP BY p.revenda_id
)
SELECT
    a.id AS Conta_ID,
    a.tipo_conta,
    b.razao_social AS Razao_Social_Pessoas,
    b.cpf_cnpj AS CNPJ,
    LEFT(b.cpf_cnpj, 8) AS Raiz_CNPJ,
    CAST(c.grupo_id AS VARCHAR(50)) AS Grupo_Economico_ID,
    c.grupo_nome AS Grupo_Economico_Nome,
    v.razao_social AS Nome_Vendedor,
    b.data_ultima_venda AS Data_Ultima_Venda_Individual,
    COALESCE(f.valor_total, 0) + COALESCE(pr.valor_total_revenda, 0) AS Faturamento_6_Meses,
    a.data_cadastro AS Data_Abertura_Conta,
    COALESCE(p.total_pedidos, 0) + COALESCE(pr.total_pedidos_revenda, 0) AS Total_Pedidos,
    COALESCE(g.Data_Ultima_Venda_Grupo_CNPJ, b.data_ultima_venda) AS Data_Ultima_Venda_Grupo_CNPJ,
    COALESCE(ct.total_contatos, 0) AS Total_Contatos,
    ct.data_ultimo_contato AS Data_Ultimo_Contato,
    COALESCE(fu.total_followups, 0) AS Total_Followups,
    fu.data_ultimo_followup AS Data_Ultimo_Followup,
    COALESCE(orc.total_orcamentos, 0) AS Total_Orcamentos,
    orc.data_ultimo_orcamento AS Data_Ultimo_Orcamento,
    COALESCE(o.total_oportunidades, 0) AS Total_Oportunidades,
    o.data_ultima_oportunidade AS Data_Ultima_Oportunidade,
    a.classificacao_id AS Classificacao_Conta,
    b.classificacao_id AS Classificacao_Pessoa,
    a.porte_id AS Porte_Empresa
FROM
    dbo.crm_contas a
    INNER JOIN dbo.pessoas b ON a.cliente_id = b.id
    INNER JOIN dbo.rel_pessoas c ON b.id = c.id
    INNER JOIN dbo.pessoas v ON a.vendedor_id = v.id
    LEFT JOIN Faturamento f ON a.cliente_id = f.pessoa_id
    LEFT JOIN Followups fu ON b.id = fu.pessoa_id
    LEFT JOIN Contatos ct ON b.id = ct.pessoa_id
    LEFT JOIN Oportunidades o ON a.id = o.pessoa_id
    LEFT JOIN Orcamentos orc ON b.id = orc.pessoa_cliente_id
    LEFT JOIN UltimaVendaPorRaizCNPJ g ON LEFT(b.cpf_cnpj, 8) = g.Raiz_CNPJ
    LEFT JOIN Pedidos p ON a.cliente_id = p.pessoa_id
    LEFT JOIN PedidosPorRevenda pr ON b.id = pr.pessoa_id
WHERE
    a.tipo_conta = 2
    AND a.excluido = 0
    AND a.status_conta = 0
    AND b.classificacao_id <> 1
    AND a.classificacao_id <> 1
ORDER BY a.id
`

const activeSalespeopleQuery = `
SELECT razao_social
FROM dbo.pessoas
WHERE vendedor = 1
    AND ativo = 1
ORDER BY razao_social
`
